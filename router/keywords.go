package router

import (
	"strings"

	"github.com/hupe1980/payrouter/core"
)

// fallbackConfidence is the fixed confidence of keyword-scored decisions,
// deliberately low so callers can tell them from model decisions.
const fallbackConfidence = 0.35

// roleKeywords maps each role to the terms that vote for it. Scoring counts
// distinct matching terms; the highest count wins and ties resolve in the
// iteration order below.
var roleKeywords = []struct {
	role  core.Role
	terms []string
}{
	{
		role: core.RolePolicyExtraction,
		terms: []string{
			"policy", "policies", "rule", "rules", "standby", "callout",
			"eligibility", "eligible", "definition", "clause", "document",
			"version", "effective", "interpret",
		},
	},
	{
		role: core.RolePayCalculation,
		terms: []string{
			"pay", "payment", "calculate", "calculation", "salary", "wage",
			"amount", "compensation", "hours", "rate", "paid", "overtime",
			"earn",
		},
	},
	{
		role: core.RoleAnalytics,
		terms: []string{
			"trend", "trends", "analyze", "analysis", "report", "compare",
			"comparison", "average", "chart", "anomaly", "outlier", "budget",
			"forecast", "statistics",
		},
	},
}

// keywordDecision scores the query against the keyword table. A query that
// matches nothing lands on the policy-extraction role, the broadest of the
// three.
func keywordDecision(query string) core.RoutingDecision {
	lowered := strings.ToLower(query)

	best := core.RolePolicyExtraction
	bestScore := 0
	for _, rk := range roleKeywords {
		score := 0
		for _, term := range rk.terms {
			if strings.Contains(lowered, term) {
				score++
			}
		}
		if score > bestScore {
			best = rk.role
			bestScore = score
		}
	}

	return core.RoutingDecision{
		Primary:    best,
		Confidence: fallbackConfidence,
		Source:     core.SourceKeywordFallback,
	}
}
