package core

import "fmt"

// ErrorKind classifies a structured error so callers can distinguish, for
// example, a locally exhausted polling budget from a remote-reported failure.
type ErrorKind string

const (
	// KindConfiguration marks a missing remote client or credentials. Fatal
	// at startup; below the orchestrator boundary it is still returned as a
	// structured error, never raised.
	KindConfiguration ErrorKind = "configuration"
	// KindProvisioning marks a failed remote agent creation.
	KindProvisioning ErrorKind = "provisioning"
	// KindAgentResolution marks a routing result for which no remote agent
	// id could be resolved through the full fallback chain.
	KindAgentResolution ErrorKind = "agent_resolution"
	// KindRunTransport marks any remote-call failure during message post,
	// run create, polling or message fetch.
	KindRunTransport ErrorKind = "run_transport"
	// KindRunTerminal marks a remote-reported failed/cancelled/expired run.
	KindRunTerminal ErrorKind = "run_terminal"
	// KindRunTimeout marks a locally exhausted polling budget.
	KindRunTimeout ErrorKind = "run_timeout"
	// KindResponseExtraction marks a completed run with no assistant text.
	KindResponseExtraction ErrorKind = "response_extraction"
)

// Error is the structured error carried inside an Outcome.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Errf builds a structured error from a format string.
func Errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
