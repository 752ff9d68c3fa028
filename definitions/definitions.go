// Package definitions holds the static catalog of agent roles: the remote
// resource name, system instructions, model and tool configuration used when
// a role has to be provisioned.
package definitions

import (
	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/remote"
)

// DefaultModel is the deployment used for every provisioned agent.
const DefaultModel = "gpt-4o"

// Definition describes one provisionable agent role.
type Definition struct {
	Role         core.Role
	Name         string
	Model        string
	Instructions string
	Tools        remote.ToolConfig
}

// Options configure a catalog.
type Options struct {
	// Model overrides the deployment name for all roles.
	Model string
	// CodeInterpreterFileIDs are already-uploaded document ids attached to
	// every agent's code interpreter tool.
	CodeInterpreterFileIDs []string
}

// Catalog resolves role definitions. It is immutable after construction.
type Catalog struct {
	byRole map[core.Role]Definition
	roles  []core.Role
}

// NewCatalog builds the default catalog with optional overrides.
func NewCatalog(optFns ...func(o *Options)) *Catalog {
	opts := Options{Model: DefaultModel}
	for _, fn := range optFns {
		fn(&opts)
	}

	tools := remote.ToolConfig{CodeInterpreter: true, FileIDs: opts.CodeInterpreterFileIDs}

	defs := []Definition{
		{
			Role:         core.RolePolicyExtraction,
			Name:         core.RolePolicyExtraction.AgentName(),
			Model:        opts.Model,
			Instructions: policyExtractionInstructions,
			Tools:        tools,
		},
		{
			Role:         core.RolePayCalculation,
			Name:         core.RolePayCalculation.AgentName(),
			Model:        opts.Model,
			Instructions: payCalculationInstructions,
			Tools:        tools,
		},
		{
			Role:         core.RoleAnalytics,
			Name:         core.RoleAnalytics.AgentName(),
			Model:        opts.Model,
			Instructions: analyticsInstructions,
			Tools:        tools,
		},
	}

	byRole := make(map[core.Role]Definition, len(defs))
	roles := make([]core.Role, 0, len(defs))
	for _, d := range defs {
		byRole[d.Role] = d
		roles = append(roles, d.Role)
	}
	return &Catalog{byRole: byRole, roles: roles}
}

// ForRole returns the definition for a role.
func (c *Catalog) ForRole(role core.Role) (Definition, bool) {
	d, ok := c.byRole[role]
	return d, ok
}

// Roles returns the catalog's roles in declaration order.
func (c *Catalog) Roles() []core.Role {
	out := make([]core.Role, len(c.roles))
	copy(out, c.roles)
	return out
}
