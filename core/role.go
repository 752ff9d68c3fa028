package core

// Role identifies a logical agent specialization. The set is fixed at
// startup; a Role value may carry a non-canonical name when the routing
// classifier returned something unmappable, in which case downstream
// registry lookup fails and surfaces a routing error.
type Role string

const (
	// RolePolicyExtraction extracts and interprets supplemental-pay policies.
	RolePolicyExtraction Role = "policy_extraction"
	// RolePayCalculation computes overtime, standby, callout and shift pay.
	RolePayCalculation Role = "pay_calculation"
	// RoleAnalytics analyzes trends, outliers and budget utilization.
	RoleAnalytics Role = "analytics"
)

// DefaultRoles returns the roles the orchestrator supports out of the box.
func DefaultRoles() []Role {
	return []Role{RolePolicyExtraction, RolePayCalculation, RoleAnalytics}
}

// AgentName returns the declared name of the remote agent resource backing
// this role. Remote discovery matches on this name.
func (r Role) AgentName() string { return string(r) + "_agent" }

// Known reports whether r is one of the given canonical roles.
func (r Role) Known(roles []Role) bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}
