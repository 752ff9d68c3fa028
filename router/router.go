package router

import (
	"context"
	"strings"

	"github.com/hupe1980/payrouter/classifier"
	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/internal/jsonx"
	"github.com/hupe1980/payrouter/logging"
)

const defaultInstructions = `You are a routing classifier for an HR supplemental-pay system. Classify the
user query into exactly one primary agent and optional secondary agents.

Available agents:
- policy_extraction: extracts and interprets supplemental-pay policies, rules,
  definitions, eligibility and version changes from company documents.
- pay_calculation: computes overtime, standby, callout and shift payments from
  policy rules, wage data and work hours.
- analytics: analyzes payment trends, budget utilization, compliance and
  outliers across the supplemental-pay data.

Respond with ONLY a JSON object in this exact format:
{"primary_agent": "<agent>", "confidence": <0.0-1.0>, "secondary_agents": ["<agent>", ...], "context": "<one sentence on why>"}`

// Options configure a Router.
type Options struct {
	// Instructions is the system prompt sent to the classifier.
	Instructions string
	// CacheCapacity bounds the decision cache.
	CacheCapacity int
	// Roles is the set of canonical roles decisions may name.
	Roles []core.Role

	Logger logging.Logger
}

// Router turns free-text queries into routing decisions.
type Router struct {
	cls   classifier.Classifier
	cache *decisionCache
	opts  Options
}

// New creates a Router over the given classifier. A nil classifier routes
// by keywords only.
func New(cls classifier.Classifier, optFns ...func(o *Options)) *Router {
	opts := Options{
		Instructions:  defaultInstructions,
		CacheCapacity: defaultCacheCapacity,
		Roles:         core.DefaultRoles(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Router{
		cls:   cls,
		cache: newDecisionCache(opts.CacheCapacity),
		opts:  opts,
	}
}

// Route classifies the query. It always returns a decision: cache hits are
// marked SourceCache, successful classifications SourceLLM, and everything
// else degrades to keyword scoring. Route never returns an error; a broken
// classifier only costs decision quality.
func (r *Router) Route(ctx context.Context, query string) core.RoutingDecision {
	key := cacheKey(query)
	if key != "" {
		if cached, ok := r.cache.get(key); ok {
			cached.Source = core.SourceCache
			return cached
		}
	}

	decision, ok := r.classify(ctx, query)
	if !ok {
		decision = keywordDecision(query)
	}

	if key != "" {
		r.cache.put(key, decision)
	}
	return decision
}

// CacheSize returns the number of cached decisions.
func (r *Router) CacheSize() int {
	return r.cache.len()
}

// classify runs the LLM path and parses the decision object out of the
// response text. ok is false whenever the result is unusable.
func (r *Router) classify(ctx context.Context, query string) (core.RoutingDecision, bool) {
	if r.cls == nil {
		return core.RoutingDecision{}, false
	}

	text, err := r.cls.Classify(ctx, r.opts.Instructions, query)
	if err != nil {
		r.opts.Logger.Warn("classification failed, using keyword fallback", "error", err)
		return core.RoutingDecision{}, false
	}

	obj, ok := jsonx.CarveObject(text)
	if !ok {
		r.opts.Logger.Warn("no decision object in classifier response", "response", text)
		return core.RoutingDecision{}, false
	}

	primaryRaw := obj.Get("primary_agent").String()
	if primaryRaw == "" {
		r.opts.Logger.Warn("decision object missing primary_agent", "response", text)
		return core.RoutingDecision{}, false
	}

	decision := core.RoutingDecision{
		Primary:    r.normalizeRole(primaryRaw),
		Confidence: clamp01(obj.Get("confidence").Float()),
		Context:    obj.Get("context").String(),
		Source:     core.SourceLLM,
	}
	for _, sec := range obj.Get("secondary_agents").Array() {
		if name := sec.String(); name != "" {
			decision.Secondary = append(decision.Secondary, r.normalizeRole(name))
		}
	}
	return decision, true
}

// normalizeRole maps a classifier-returned agent name onto a canonical role
// by substring containment in either direction, tolerating decorations like
// "HR Policy Extraction Agent". Unmappable names pass through verbatim so
// the failure surfaces at agent resolution instead of being silently
// rerouted.
func (r *Router) normalizeRole(name string) core.Role {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "_", "-", "_").Replace(n)
	if n == "" {
		return core.Role(name)
	}

	for _, role := range r.opts.Roles {
		if strings.Contains(n, string(role)) || strings.Contains(string(role), n) {
			return role
		}
	}
	return core.Role(strings.TrimSpace(name))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
