package registry

import (
	"context"
	"sync"

	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/definitions"
	"github.com/hupe1980/payrouter/logging"
	"github.com/hupe1980/payrouter/remote"
)

// Options configure a Registry.
type Options struct {
	// Store persists resolved ids between runs. Nil disables persistence.
	Store Store
	// Fallback is a secondary provisioning path tried when the primary
	// directory fails to create an agent. Nil disables the fallback.
	Fallback remote.Directory

	Logger logging.Logger
}

// Registry resolves roles to remote agent ids. All methods are safe for
// concurrent use.
type Registry struct {
	mu      sync.Mutex
	dir     remote.Directory
	catalog *definitions.Catalog
	ids     map[core.Role]string
	opts    Options
}

// New creates a Registry over the given directory and role catalog.
func New(dir remote.Directory, catalog *definitions.Catalog, optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Registry{
		dir:     dir,
		catalog: catalog,
		ids:     map[core.Role]string{},
		opts:    opts,
	}
}

// EnsureAll resolves an agent id for every catalog role. It short-circuits
// when the in-memory pool is already populated, so it is safe to call on
// every request. Resolution per role tries, in order, the persisted mapping,
// discovery of an existing remote agent by name, and fresh provisioning.
// Individual role failures are logged and skipped; an error is returned only
// when not a single role could be resolved.
func (r *Registry) EnsureAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.ids) > 0 {
		return nil
	}
	if r.dir == nil {
		return core.Errf(core.KindConfiguration, "no agent directory configured")
	}

	resolved := r.loadValidated(ctx)

	var remoteAgents []remote.Agent
	listed := false

	for _, role := range r.catalog.Roles() {
		if _, ok := resolved[role]; ok {
			continue
		}
		def, ok := r.catalog.ForRole(role)
		if !ok {
			continue
		}

		if !listed {
			agents, err := r.dir.ListAgents(ctx)
			if err != nil {
				r.opts.Logger.Warn("agent discovery failed", "error", err)
			} else {
				remoteAgents = agents
			}
			listed = true
		}
		if id := findByName(remoteAgents, def.Name); id != "" {
			r.opts.Logger.Info("reusing existing agent", "role", role, "agentID", id)
			resolved[role] = id
			continue
		}

		id, err := r.provision(ctx, def)
		if err != nil {
			r.opts.Logger.Error("agent provisioning failed", "role", role, "error", err)
			continue
		}
		r.opts.Logger.Info("agent provisioned", "role", role, "agentID", id)
		resolved[role] = id
	}

	r.persist(resolved)

	if len(resolved) == 0 {
		return core.Errf(core.KindProvisioning, "no agents could be resolved or provisioned")
	}
	if len(resolved) < len(r.catalog.Roles()) {
		r.opts.Logger.Warn("agent pool is partial", "resolved", len(resolved), "wanted", len(r.catalog.Roles()))
	}
	r.ids = resolved
	return nil
}

// loadValidated loads the persisted mapping and drops every id the directory
// no longer knows. A pruned subset is written back immediately so the next
// load starts clean.
func (r *Registry) loadValidated(ctx context.Context) map[core.Role]string {
	resolved := map[core.Role]string{}
	if r.opts.Store == nil {
		return resolved
	}

	persisted, err := r.opts.Store.Load()
	if err != nil {
		r.opts.Logger.Warn("loading persisted agent ids failed", "error", err)
		return resolved
	}

	pruned := false
	for role, id := range persisted {
		if _, err := r.dir.GetAgent(ctx, id); err != nil {
			r.opts.Logger.Warn("persisted agent no longer exists", "role", role, "agentID", id, "error", err)
			pruned = true
			continue
		}
		resolved[role] = id
	}
	if pruned {
		r.persist(resolved)
	}
	return resolved
}

// provision creates the agent through the primary directory, falling back to
// the secondary path on failure.
func (r *Registry) provision(ctx context.Context, def definitions.Definition) (string, error) {
	spec := remote.AgentSpec{
		Name:         def.Name,
		Model:        def.Model,
		Instructions: def.Instructions,
		Tools:        def.Tools,
	}

	agent, err := r.dir.CreateAgent(ctx, spec)
	if err == nil {
		return agent.ID, nil
	}
	if r.opts.Fallback == nil {
		return "", err
	}

	r.opts.Logger.Warn("primary provisioning failed, trying fallback", "role", def.Role, "error", err)
	agent, fbErr := r.opts.Fallback.CreateAgent(ctx, spec)
	if fbErr != nil {
		return "", fbErr
	}
	return agent.ID, nil
}

func (r *Registry) persist(ids map[core.Role]string) {
	if r.opts.Store == nil {
		return
	}
	if err := r.opts.Store.Save(ids); err != nil {
		r.opts.Logger.Warn("persisting agent ids failed", "error", err)
	}
}

// Resolve returns the agent id for a role.
func (r *Registry) Resolve(role core.Role) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.ids[role]
	return id, ok
}

// First returns the first resolved role in catalog order. Used as the
// degraded last resort when routing cannot place a query.
func (r *Registry) First() (core.Role, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.catalog.Roles() {
		if id, ok := r.ids[role]; ok {
			return role, id, true
		}
	}
	return "", "", false
}

// All returns a copy of the resolved mapping.
func (r *Registry) All() map[core.Role]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[core.Role]string, len(r.ids))
	for role, id := range r.ids {
		out[role] = id
	}
	return out
}

// PurgeAll deletes every agent listed by the remote directory except the
// given ids, then drops the purged entries from the pool and re-persists.
// Sweeping the directory instead of the pool also removes agents leaked by
// earlier crashed provisioning runs. Individual delete failures are logged;
// their pool entries survive so a retry can finish the job.
func (r *Registry) PurgeAll(ctx context.Context, keepIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dir == nil {
		return core.Errf(core.KindConfiguration, "no agent directory configured")
	}

	agents, err := r.dir.ListAgents(ctx)
	if err != nil {
		return core.Errf(core.KindProvisioning, "list agents for purge: %v", err)
	}

	keep := make(map[string]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}

	failed := map[string]struct{}{}
	for _, agent := range agents {
		if _, ok := keep[agent.ID]; ok {
			r.opts.Logger.Info("agent kept", "agentID", agent.ID, "name", agent.Name)
			continue
		}
		if err := r.dir.DeleteAgent(ctx, agent.ID); err != nil {
			r.opts.Logger.Warn("agent delete failed", "agentID", agent.ID, "error", err)
			failed[agent.ID] = struct{}{}
			continue
		}
		r.opts.Logger.Info("agent deleted", "agentID", agent.ID, "name", agent.Name)
	}

	remaining := map[core.Role]string{}
	for role, id := range r.ids {
		_, kept := keep[id]
		_, undeleted := failed[id]
		if kept || undeleted {
			remaining[role] = id
		}
	}
	r.ids = remaining
	r.persist(remaining)

	if len(failed) > 0 {
		return core.Errf(core.KindProvisioning, "%d agents could not be deleted", len(failed))
	}
	return nil
}

func findByName(agents []remote.Agent, name string) string {
	for _, a := range agents {
		if a.Name == name {
			return a.ID
		}
	}
	return ""
}
