// Package payrouter routes HR supplemental-pay queries to specialized remote
// agents and manages the full lifecycle of the resulting runs: agent
// provisioning, query classification, run execution and response extraction.
package payrouter

import (
	"context"
	"sort"
	"strings"

	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/executor"
	"github.com/hupe1980/payrouter/logging"
	"github.com/hupe1980/payrouter/registry"
	"github.com/hupe1980/payrouter/router"
)

// Options configure an Orchestrator.
type Options struct {
	Logger logging.Logger
}

// Orchestrator is the top-level facade tying registry, router and executor
// together. It is safe for concurrent use.
type Orchestrator struct {
	registry *registry.Registry
	router   *router.Router
	executor *executor.Executor
	opts     Options
}

// New creates an Orchestrator from its three collaborators.
func New(reg *registry.Registry, rtr *router.Router, exec *executor.Executor, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Orchestrator{registry: reg, router: rtr, executor: exec, opts: opts}
}

// RequestOptions configure a single routed request.
type RequestOptions struct {
	// Role bypasses classification and targets the given role directly.
	Role core.Role
	// Parameters are appended to the query as a sorted context block so the
	// agent sees structured inputs alongside the free-text question.
	Parameters map[string]string
	// ThreadID reuses an existing conversation thread.
	ThreadID string
	// DisableTools suppresses tool invocation for this run.
	DisableTools bool
}

// Response is the result of a routed request: the routing decision that
// picked the agent plus the run outcome.
type Response struct {
	Decision core.RoutingDecision `json:"decision"`
	Outcome  core.Outcome         `json:"outcome"`
}

// EnsureAgentsDeployed resolves or provisions the full agent pool. It is
// idempotent and cheap once the pool is populated.
func (o *Orchestrator) EnsureAgentsDeployed(ctx context.Context) error {
	return o.registry.EnsureAll(ctx)
}

// AgentIDs returns the resolved role to agent-id mapping.
func (o *Orchestrator) AgentIDs() map[core.Role]string {
	return o.registry.All()
}

// PurgeAgents deletes every remotely listed agent except the given ids and
// clears persisted state.
func (o *Orchestrator) PurgeAgents(ctx context.Context, keepIDs ...string) error {
	return o.registry.PurgeAll(ctx, keepIDs...)
}

// RouteRequest classifies the query, resolves an agent and runs it. All
// failures, including deployment failures, are reported inside the response
// outcome so callers handle exactly one shape.
func (o *Orchestrator) RouteRequest(ctx context.Context, query string, optFns ...func(o *RequestOptions)) Response {
	var reqOpts RequestOptions
	for _, fn := range optFns {
		fn(&reqOpts)
	}

	if err := o.EnsureAgentsDeployed(ctx); err != nil {
		return Response{Outcome: failureFromErr(err)}
	}

	var decision core.RoutingDecision
	if reqOpts.Role != "" {
		decision = core.RoutingDecision{Primary: reqOpts.Role, Confidence: 1.0, Source: core.SourceExplicit}
	} else {
		decision = o.router.Route(ctx, query)
	}
	o.opts.Logger.Info("query routed",
		"primary", decision.Primary, "confidence", decision.Confidence, "source", decision.Source)

	role, agentID, ok := o.resolveAgent(decision)
	if !ok {
		err := core.Errf(core.KindAgentResolution, "no agent id resolved for role %q", decision.Primary)
		return Response{Decision: decision, Outcome: core.Failure(err, "", "")}
	}
	if role != decision.Primary {
		o.opts.Logger.Warn("primary role not resolvable, degraded routing", "requested", decision.Primary, "using", role)
	}

	outcome := o.executor.Execute(ctx, executor.Request{
		AgentID:      agentID,
		Query:        buildQuery(query, reqOpts.Parameters),
		ThreadID:     reqOpts.ThreadID,
		DisableTools: reqOpts.DisableTools,
	})
	return Response{Decision: decision, Outcome: outcome}
}

// RunAgentDirect runs a specific remote agent id without routing or
// registry lookup. Intended for testing and administration.
func (o *Orchestrator) RunAgentDirect(ctx context.Context, agentID, message string, disableTools bool) core.Outcome {
	return o.executor.Execute(ctx, executor.Request{
		AgentID:      agentID,
		Query:        message,
		DisableTools: disableTools,
	})
}

// resolveAgent walks the fallback chain: exact primary, substring overlap
// against resolved roles, secondary candidates, then the first available
// agent as a degraded last resort.
func (o *Orchestrator) resolveAgent(decision core.RoutingDecision) (core.Role, string, bool) {
	if id, ok := o.registry.Resolve(decision.Primary); ok {
		return decision.Primary, id, true
	}

	if role, id, ok := o.resolveByOverlap(decision.Primary); ok {
		return role, id, true
	}

	for _, sec := range decision.Secondary {
		if id, ok := o.registry.Resolve(sec); ok {
			return sec, id, true
		}
	}

	if role, id, ok := o.registry.First(); ok {
		return role, id, true
	}
	return "", "", false
}

// resolveByOverlap matches a non-canonical role name against resolved roles
// by substring containment in either direction.
func (o *Orchestrator) resolveByOverlap(requested core.Role) (core.Role, string, bool) {
	name := strings.ToLower(strings.TrimSpace(string(requested)))
	if name == "" {
		return "", "", false
	}
	for role, id := range o.registry.All() {
		if strings.Contains(name, string(role)) || strings.Contains(string(role), name) {
			return role, id, true
		}
	}
	return "", "", false
}

// buildQuery appends the parameters as a deterministic context block.
func buildQuery(query string, params map[string]string) string {
	if len(params) == 0 {
		return query
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(query)
	sb.WriteString("\n\nContext:\n")
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(params[k])
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func failureFromErr(err error) core.Outcome {
	if cerr, ok := err.(*core.Error); ok {
		return core.Failure(cerr, "", "")
	}
	return core.Failure(core.Errf(core.KindConfiguration, "%v", err), "", "")
}
