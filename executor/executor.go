package executor

import (
	"context"
	"time"

	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/logging"
	"github.com/hupe1980/payrouter/remote"
)

// Options configure an Executor.
type Options struct {
	// MaxPolls bounds the number of status polls per run.
	MaxPolls int
	// BaseDelay is the wait before the first poll. It doubles after every
	// poll up to MaxDelay.
	BaseDelay time.Duration
	// MaxDelay caps the per-poll wait.
	MaxDelay time.Duration
	// Sleep waits for the given duration, honoring context cancellation.
	// Overridable so tests run the full backoff ladder instantly.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger logging.Logger
}

// Executor runs agents against a remote conversation API.
type Executor struct {
	conv remote.Conversation
	opts Options
}

// New creates an Executor for the given conversation API.
func New(conv remote.Conversation, optFns ...func(o *Options)) *Executor {
	opts := Options{
		MaxPolls:  15,
		BaseDelay: time.Second,
		MaxDelay:  30 * time.Second,
		Sleep:     sleepCtx,
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Executor{conv: conv, opts: opts}
}

// Request describes one agent run.
type Request struct {
	// AgentID is the remote id of the agent to run.
	AgentID string
	// Query is posted as the user message.
	Query string
	// ThreadID reuses an existing thread when set; otherwise a fresh thread
	// is created for the run.
	ThreadID string
	// DisableTools suppresses tool invocation for this run only.
	DisableTools bool
}

// Execute runs the request to completion and returns a structured outcome.
// It never returns a raw error; transport, terminal, timeout and extraction
// failures all land in Outcome.Err with the thread and run ids attached.
func (e *Executor) Execute(ctx context.Context, req Request) core.Outcome {
	if e.conv == nil {
		return core.Failure(core.Errf(core.KindConfiguration, "no conversation client configured"), "", "")
	}

	threadID := req.ThreadID
	if threadID == "" {
		thread, err := e.conv.CreateThread(ctx)
		if err != nil {
			return core.Failure(core.Errf(core.KindRunTransport, "create thread: %v", err), "", "")
		}
		threadID = thread.ID
	}

	if err := e.conv.PostMessage(ctx, threadID, "user", req.Query); err != nil {
		return core.Failure(core.Errf(core.KindRunTransport, "post message: %v", err), threadID, "")
	}

	run, err := e.conv.CreateRun(ctx, threadID, req.AgentID, req.DisableTools)
	if err != nil {
		return core.Failure(core.Errf(core.KindRunTransport, "create run: %v", err), threadID, "")
	}
	e.opts.Logger.Debug("run created", "threadID", threadID, "runID", run.ID, "agentID", req.AgentID)

	run, pollErr := e.poll(ctx, threadID, run)
	if pollErr != nil {
		return core.Failure(pollErr, threadID, run.ID)
	}

	if run.Status.Failed() {
		e.logRunSteps(ctx, threadID, run.ID)
		return core.Failure(core.Errf(core.KindRunTerminal, "Run %s ended with status: %s", run.ID, run.Status), threadID, run.ID)
	}

	result, extractErr := e.extractResponse(ctx, threadID)
	if extractErr != nil {
		return core.Failure(extractErr, threadID, run.ID)
	}

	return core.Success(result, threadID, run.ID)
}

// poll waits for the run to reach a terminal status, doubling the delay
// after each check up to MaxDelay. The budget is MaxPolls checks.
func (e *Executor) poll(ctx context.Context, threadID string, run remote.Run) (remote.Run, *core.Error) {
	delay := e.opts.BaseDelay
	for i := 0; i < e.opts.MaxPolls; i++ {
		if run.Status.Terminal() {
			return run, nil
		}

		if err := e.opts.Sleep(ctx, delay); err != nil {
			return run, core.Errf(core.KindRunTransport, "poll run %s: %v", run.ID, err)
		}
		delay *= 2
		if delay > e.opts.MaxDelay {
			delay = e.opts.MaxDelay
		}

		updated, err := e.conv.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return run, core.Errf(core.KindRunTransport, "poll run %s: %v", run.ID, err)
		}
		run = updated
		e.opts.Logger.Debug("run polled", "runID", run.ID, "status", run.Status, "poll", i+1)
	}

	if run.Status.Terminal() {
		return run, nil
	}
	return run, core.Errf(core.KindRunTimeout, "maximum retries reached waiting for run %s to complete", run.ID)
}

// extractResponse returns the first text block of the newest assistant
// message on the thread.
func (e *Executor) extractResponse(ctx context.Context, threadID string) (string, *core.Error) {
	messages, err := e.conv.ListMessages(ctx, threadID)
	if err != nil {
		return "", core.Errf(core.KindRunTransport, "list messages: %v", err)
	}

	var newest *remote.Message
	for i := range messages {
		m := &messages[i]
		if m.Role != "assistant" || len(m.Texts) == 0 {
			continue
		}
		if newest == nil || m.CreatedAt > newest.CreatedAt {
			newest = m
		}
	}
	if newest == nil {
		return "", core.Errf(core.KindResponseExtraction, "no assistant response found")
	}
	return newest.Texts[0], nil
}

// logRunSteps fetches run steps for diagnostics. Failures are logged and
// swallowed; the terminal-status error already carries the user-facing cause.
func (e *Executor) logRunSteps(ctx context.Context, threadID, runID string) {
	steps, err := e.conv.ListRunSteps(ctx, threadID, runID)
	if err != nil {
		e.opts.Logger.Warn("list run steps failed", "runID", runID, "error", err)
		return
	}
	for _, step := range steps {
		e.opts.Logger.Info("run step", "runID", runID, "stepID", step.ID, "type", step.Type, "status", step.Status)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
