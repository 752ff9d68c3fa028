// Package router classifies free-text payroll queries into agent roles. The
// primary path asks an LLM classifier for a JSON decision; unparsable or
// failed classifications degrade to keyword scoring so routing always
// produces a decision. Decisions are cached under a normalized query key.
package router
