// Package core defines the shared domain types of payrouter: agent roles,
// routing decisions, and the structured Outcome/Error shapes that replace
// exception-style control flow below the orchestrator boundary.
package core
