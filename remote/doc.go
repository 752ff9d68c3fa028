// Package remote defines the vendor-agnostic contracts payrouter's core
// depends on: a Directory of hosted agent resources and a Conversation API
// for threads, messages and runs. Concrete adapters (see remote/openaiagents)
// normalize SDK responses into the fixed shapes declared here before they
// reach core logic.
package remote
