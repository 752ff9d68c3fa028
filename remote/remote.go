package remote

import "context"

// RunStatus is the normalized lifecycle status of a remote run.
type RunStatus string

const (
	// StatusQueued means the run is waiting to start.
	StatusQueued RunStatus = "queued"
	// StatusInProgress means the run is executing.
	StatusInProgress RunStatus = "in_progress"
	// StatusCompleted means the run finished successfully.
	StatusCompleted RunStatus = "completed"
	// StatusFailed means the remote service reported a failure.
	StatusFailed RunStatus = "failed"
	// StatusCancelled means the run was cancelled remotely.
	StatusCancelled RunStatus = "cancelled"
	// StatusExpired means the run exceeded the remote service's deadline.
	StatusExpired RunStatus = "expired"
)

// Terminal reports whether the status ends the polling loop.
func (s RunStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// Failed reports whether the status is a terminal failure.
func (s RunStatus) Failed() bool {
	return s.Terminal() && s != StatusCompleted
}

// Agent is a remotely provisioned agent resource.
type Agent struct {
	ID   string
	Name string
}

// Thread is an ordered conversation history.
type Thread struct {
	ID string
}

// Run is one execution of an agent against a thread.
type Run struct {
	ID       string
	ThreadID string
	Status   RunStatus
}

// Message is a single conversation turn. Texts holds the values of the
// message's text content blocks in order.
type Message struct {
	ID        string
	Role      string
	CreatedAt int64
	Texts     []string
}

// RunStep is a diagnostic record of one step within a run.
type RunStep struct {
	ID     string
	Type   string
	Status string
}

// ToolConfig describes the tool attachments of an agent resource. File
// upload itself is out of scope; callers supply already-uploaded file ids.
type ToolConfig struct {
	CodeInterpreter bool
	FileIDs         []string
}

// AgentSpec is the provisioning request for a new agent resource.
type AgentSpec struct {
	Name         string
	Model        string
	Instructions string
	Tools        ToolConfig
}

// Directory is the remote agent directory API.
type Directory interface {
	CreateAgent(ctx context.Context, spec AgentSpec) (Agent, error)
	GetAgent(ctx context.Context, id string) (Agent, error)
	ListAgents(ctx context.Context) ([]Agent, error)
	DeleteAgent(ctx context.Context, id string) error
}

// Conversation is the remote conversation API driving threads and runs.
type Conversation interface {
	CreateThread(ctx context.Context) (Thread, error)
	PostMessage(ctx context.Context, threadID, role, text string) error
	// CreateRun starts a run of the given agent on the thread. When
	// disableTools is set, tool invocation is suppressed for this run only.
	CreateRun(ctx context.Context, threadID, agentID string, disableTools bool) (Run, error)
	GetRun(ctx context.Context, threadID, runID string) (Run, error)
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
	// ListRunSteps is used for diagnostics only; failures are non-fatal.
	ListRunSteps(ctx context.Context, threadID, runID string) ([]RunStep, error)
}
