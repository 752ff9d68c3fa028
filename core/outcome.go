package core

// Outcome is the result of one agent run: either a usable textual result or
// a structured error, always with the thread (and, when known, run)
// identifiers needed to inspect the remote conversation.
type Outcome struct {
	Result   string `json:"result,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
	RunID    string `json:"run_id,omitempty"`
	Err      *Error `json:"error,omitempty"`
}

// OK reports whether the outcome carries a usable result.
func (o Outcome) OK() bool { return o.Err == nil }

// Success builds a successful outcome.
func Success(result, threadID, runID string) Outcome {
	return Outcome{Result: result, ThreadID: threadID, RunID: runID}
}

// Failure builds an error outcome.
func Failure(err *Error, threadID, runID string) Outcome {
	return Outcome{Err: err, ThreadID: threadID, RunID: runID}
}
