// Package executor drives a single agent run from message post to final
// response: create or reuse a thread, start the run, poll with capped
// exponential backoff until a terminal status, then extract the newest
// assistant text. Every failure mode is reported as a structured outcome
// rather than a raw error.
package executor
