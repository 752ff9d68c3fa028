package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/remote"
)

type fakeConversation struct {
	createThreadErr error
	postErr         error
	createRunErr    error
	getRunErr       error
	listMessagesErr error
	listStepsErr    error

	// statuses is consumed by successive GetRun calls; the last entry
	// repeats once exhausted.
	statuses []remote.RunStatus
	messages []remote.Message
	steps    []remote.RunStep

	postedText     string
	postedThread   string
	runThread      string
	runAgent       string
	disabledTools  bool
	getRunCalls    int
	listStepsCalls int
}

func (f *fakeConversation) CreateThread(ctx context.Context) (remote.Thread, error) {
	if f.createThreadErr != nil {
		return remote.Thread{}, f.createThreadErr
	}
	return remote.Thread{ID: "thread-1"}, nil
}

func (f *fakeConversation) PostMessage(ctx context.Context, threadID, role, text string) error {
	f.postedThread = threadID
	f.postedText = text
	return f.postErr
}

func (f *fakeConversation) CreateRun(ctx context.Context, threadID, agentID string, disableTools bool) (remote.Run, error) {
	if f.createRunErr != nil {
		return remote.Run{}, f.createRunErr
	}
	f.runThread = threadID
	f.runAgent = agentID
	f.disabledTools = disableTools
	return remote.Run{ID: "run-1", ThreadID: threadID, Status: remote.StatusQueued}, nil
}

func (f *fakeConversation) GetRun(ctx context.Context, threadID, runID string) (remote.Run, error) {
	if f.getRunErr != nil {
		return remote.Run{}, f.getRunErr
	}
	idx := f.getRunCalls
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	f.getRunCalls++
	return remote.Run{ID: runID, ThreadID: threadID, Status: f.statuses[idx]}, nil
}

func (f *fakeConversation) ListMessages(ctx context.Context, threadID string) ([]remote.Message, error) {
	if f.listMessagesErr != nil {
		return nil, f.listMessagesErr
	}
	return f.messages, nil
}

func (f *fakeConversation) ListRunSteps(ctx context.Context, threadID, runID string) ([]remote.RunStep, error) {
	f.listStepsCalls++
	if f.listStepsErr != nil {
		return nil, f.listStepsErr
	}
	return f.steps, nil
}

func instantSleep(delays *[]time.Duration) func(ctx context.Context, d time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestExecuteSuccess(t *testing.T) {
	conv := &fakeConversation{
		statuses: []remote.RunStatus{remote.StatusInProgress, remote.StatusCompleted},
		messages: []remote.Message{
			{ID: "m1", Role: "user", CreatedAt: 1, Texts: []string{"what are the standby rules?"}},
			{ID: "m2", Role: "assistant", CreatedAt: 2, Texts: []string{"old answer"}},
			{ID: "m3", Role: "assistant", CreatedAt: 3, Texts: []string{"final answer", "appendix"}},
		},
	}
	var delays []time.Duration
	e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })

	out := e.Execute(context.Background(), Request{AgentID: "agent-1", Query: "what are the standby rules?"})

	assert.True(t, out.OK())
	assert.Equal(t, "final answer", out.Result)
	assert.Equal(t, "thread-1", out.ThreadID)
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, "what are the standby rules?", conv.postedText)
	assert.Equal(t, "agent-1", conv.runAgent)
	assert.False(t, conv.disabledTools)
}

func TestExecuteReusesCallerThread(t *testing.T) {
	conv := &fakeConversation{
		statuses: []remote.RunStatus{remote.StatusCompleted},
		messages: []remote.Message{{Role: "assistant", CreatedAt: 1, Texts: []string{"ok"}}},
	}
	var delays []time.Duration
	e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })

	out := e.Execute(context.Background(), Request{AgentID: "agent-1", Query: "q", ThreadID: "existing", DisableTools: true})

	assert.True(t, out.OK())
	assert.Equal(t, "existing", out.ThreadID)
	assert.Equal(t, "existing", conv.postedThread)
	assert.True(t, conv.disabledTools)
}

func TestExecuteBackoffLadder(t *testing.T) {
	conv := &fakeConversation{
		statuses: []remote.RunStatus{remote.StatusInProgress},
	}
	var delays []time.Duration
	e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })

	out := e.Execute(context.Background(), Request{AgentID: "agent-1", Query: "q"})

	assert.False(t, out.OK())
	assert.Equal(t, core.KindRunTimeout, out.Err.Kind)
	assert.Equal(t, "maximum retries reached waiting for run run-1 to complete", out.Err.Message)

	want := []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 30 * time.Second, 30 * time.Second, 30 * time.Second,
		30 * time.Second, 30 * time.Second, 30 * time.Second, 30 * time.Second,
		30 * time.Second, 30 * time.Second, 30 * time.Second,
	}
	assert.Equal(t, want, delays)
}

func TestExecuteTerminalFailure(t *testing.T) {
	conv := &fakeConversation{
		statuses: []remote.RunStatus{remote.StatusFailed},
		steps:    []remote.RunStep{{ID: "s1", Type: "message_creation", Status: "failed"}},
	}
	var delays []time.Duration
	e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })

	out := e.Execute(context.Background(), Request{AgentID: "agent-1", Query: "q"})

	assert.False(t, out.OK())
	assert.Equal(t, core.KindRunTerminal, out.Err.Kind)
	assert.Equal(t, "Run run-1 ended with status: failed", out.Err.Message)
	assert.Equal(t, 1, conv.listStepsCalls)
	assert.Equal(t, "thread-1", out.ThreadID)
	assert.Equal(t, "run-1", out.RunID)
}

func TestExecuteTerminalFailureStepFetchErrorIsSwallowed(t *testing.T) {
	conv := &fakeConversation{
		statuses:     []remote.RunStatus{remote.StatusCancelled},
		listStepsErr: errors.New("boom"),
	}
	var delays []time.Duration
	e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })

	out := e.Execute(context.Background(), Request{AgentID: "agent-1", Query: "q"})

	assert.Equal(t, core.KindRunTerminal, out.Err.Kind)
	assert.Equal(t, "Run run-1 ended with status: cancelled", out.Err.Message)
}

func TestExecuteNoAssistantResponse(t *testing.T) {
	conv := &fakeConversation{
		statuses: []remote.RunStatus{remote.StatusCompleted},
		messages: []remote.Message{{Role: "user", CreatedAt: 1, Texts: []string{"q"}}},
	}
	var delays []time.Duration
	e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })

	out := e.Execute(context.Background(), Request{AgentID: "agent-1", Query: "q"})

	assert.False(t, out.OK())
	assert.Equal(t, core.KindResponseExtraction, out.Err.Kind)
	assert.Equal(t, "no assistant response found", out.Err.Message)
}

func TestExecuteTransportErrors(t *testing.T) {
	t.Run("create thread", func(t *testing.T) {
		conv := &fakeConversation{createThreadErr: errors.New("503")}
		e := New(conv)
		out := e.Execute(context.Background(), Request{AgentID: "a", Query: "q"})
		assert.Equal(t, core.KindRunTransport, out.Err.Kind)
		assert.Empty(t, out.ThreadID)
	})

	t.Run("post message", func(t *testing.T) {
		conv := &fakeConversation{postErr: errors.New("503")}
		e := New(conv)
		out := e.Execute(context.Background(), Request{AgentID: "a", Query: "q"})
		assert.Equal(t, core.KindRunTransport, out.Err.Kind)
		assert.Equal(t, "thread-1", out.ThreadID)
	})

	t.Run("poll", func(t *testing.T) {
		conv := &fakeConversation{getRunErr: errors.New("503")}
		var delays []time.Duration
		e := New(conv, func(o *Options) { o.Sleep = instantSleep(&delays) })
		out := e.Execute(context.Background(), Request{AgentID: "a", Query: "q"})
		assert.Equal(t, core.KindRunTransport, out.Err.Kind)
		assert.Equal(t, "run-1", out.RunID)
	})
}

func TestExecuteNilConversation(t *testing.T) {
	e := New(nil)
	out := e.Execute(context.Background(), Request{AgentID: "a", Query: "q"})
	assert.Equal(t, core.KindConfiguration, out.Err.Kind)
}
