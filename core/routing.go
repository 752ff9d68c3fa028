package core

// DecisionSource records how a routing decision was produced.
type DecisionSource string

const (
	// SourceLLM marks a decision produced by the LLM classifier.
	SourceLLM DecisionSource = "llm"
	// SourceKeywordFallback marks a decision produced by keyword scoring.
	SourceKeywordFallback DecisionSource = "keyword_fallback"
	// SourceCache marks a decision served from the routing cache.
	SourceCache DecisionSource = "cache"
	// SourceExplicit marks a caller-pinned role that bypassed routing.
	SourceExplicit DecisionSource = "explicit"
)

// RoutingDecision is the result of classifying a free-text query into a
// primary agent role plus advisory secondary candidates.
type RoutingDecision struct {
	Primary    Role           `json:"primary_role"`
	Confidence float64        `json:"confidence"`
	Secondary  []Role         `json:"secondary_roles,omitempty"`
	Context    string         `json:"context,omitempty"`
	Source     DecisionSource `json:"source"`
}

// Clone returns a deep copy so cached decisions cannot be mutated by callers.
func (d RoutingDecision) Clone() RoutingDecision {
	out := d
	if d.Secondary != nil {
		out.Secondary = make([]Role, len(d.Secondary))
		copy(out.Secondary, d.Secondary)
	}
	return out
}
