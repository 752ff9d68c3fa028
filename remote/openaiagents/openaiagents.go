// Package openaiagents implements the remote.Directory and
// remote.Conversation contracts on top of the OpenAI Assistants API
// (threads, messages, runs). It normalizes SDK return values into the fixed
// shapes of package remote so core logic never touches vendor types.
package openaiagents

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/payrouter/remote"
)

// Options configure the adapter.
type Options struct {
	// PageLimit bounds listing calls. The service default is used when 0.
	PageLimit int64
}

// Client adapts an *openai.Client to the remote contracts.
type Client struct {
	client *openai.Client
	opts   Options
}

// New creates an adapter using the default OpenAI client (API key from env).
func New(optFns ...func(o *Options)) *Client {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates an adapter from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Client {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{client: client, opts: opts}
}

// Compile-time interface checks.
var (
	_ remote.Directory    = (*Client)(nil)
	_ remote.Conversation = (*Client)(nil)
)

// CreateAgent provisions a new assistant resource.
func (c *Client) CreateAgent(ctx context.Context, spec remote.AgentSpec) (remote.Agent, error) {
	params := openai.BetaAssistantNewParams{
		Model:        openai.ChatModel(spec.Model),
		Name:         openai.String(spec.Name),
		Instructions: openai.String(spec.Instructions),
	}
	if spec.Tools.CodeInterpreter {
		params.Tools = []openai.AssistantToolUnionParam{
			{OfCodeInterpreter: &openai.CodeInterpreterToolParam{}},
		}
		if len(spec.Tools.FileIDs) > 0 {
			params.ToolResources = openai.BetaAssistantNewParamsToolResources{
				CodeInterpreter: openai.BetaAssistantNewParamsToolResourcesCodeInterpreter{
					FileIDs: spec.Tools.FileIDs,
				},
			}
		}
	}
	assistant, err := c.client.Beta.Assistants.New(ctx, params)
	if err != nil {
		return remote.Agent{}, fmt.Errorf("create agent %q: %w", spec.Name, err)
	}
	return remote.Agent{ID: assistant.ID, Name: assistant.Name}, nil
}

// GetAgent fetches an assistant by id.
func (c *Client) GetAgent(ctx context.Context, id string) (remote.Agent, error) {
	assistant, err := c.client.Beta.Assistants.Get(ctx, id)
	if err != nil {
		return remote.Agent{}, fmt.Errorf("get agent %s: %w", id, err)
	}
	return remote.Agent{ID: assistant.ID, Name: assistant.Name}, nil
}

// ListAgents lists all assistant resources.
func (c *Client) ListAgents(ctx context.Context) ([]remote.Agent, error) {
	params := openai.BetaAssistantListParams{}
	if c.opts.PageLimit > 0 {
		params.Limit = openai.Int(c.opts.PageLimit)
	}
	iter := c.client.Beta.Assistants.ListAutoPaging(ctx, params)
	var agents []remote.Agent
	for iter.Next() {
		a := iter.Current()
		agents = append(agents, remote.Agent{ID: a.ID, Name: a.Name})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

// DeleteAgent removes an assistant resource.
func (c *Client) DeleteAgent(ctx context.Context, id string) error {
	if _, err := c.client.Beta.Assistants.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete agent %s: %w", id, err)
	}
	return nil
}

// CreateThread opens a fresh conversation thread.
func (c *Client) CreateThread(ctx context.Context) (remote.Thread, error) {
	thread, err := c.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return remote.Thread{}, fmt.Errorf("create thread: %w", err)
	}
	return remote.Thread{ID: thread.ID}, nil
}

// PostMessage appends a message turn to the thread.
func (c *Client) PostMessage(ctx context.Context, threadID, role, text string) error {
	_, err := c.client.Beta.Threads.Messages.New(ctx, threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRole(role),
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return fmt.Errorf("post message to thread %s: %w", threadID, err)
	}
	return nil
}

// CreateRun starts a run of the given assistant on the thread. When
// disableTools is set, tool choice is pinned to "none" for this run only.
func (c *Client) CreateRun(ctx context.Context, threadID, agentID string, disableTools bool) (remote.Run, error) {
	params := openai.BetaThreadRunNewParams{AssistantID: agentID}
	if disableTools {
		params.ToolChoice = openai.AssistantToolChoiceOptionUnionParam{
			OfAuto: openai.String("none"),
		}
	}
	run, err := c.client.Beta.Threads.Runs.New(ctx, threadID, params)
	if err != nil {
		return remote.Run{}, fmt.Errorf("create run on thread %s: %w", threadID, err)
	}
	return normalizeRun(run), nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (remote.Run, error) {
	run, err := c.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return remote.Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	return normalizeRun(run), nil
}

// ListMessages returns all messages on the thread with their text blocks.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]remote.Message, error) {
	params := openai.BetaThreadMessageListParams{}
	if c.opts.PageLimit > 0 {
		params.Limit = openai.Int(c.opts.PageLimit)
	}
	iter := c.client.Beta.Threads.Messages.ListAutoPaging(ctx, threadID, params)
	var messages []remote.Message
	for iter.Next() {
		m := iter.Current()
		msg := remote.Message{ID: m.ID, Role: string(m.Role), CreatedAt: m.CreatedAt}
		for _, content := range m.Content {
			if content.Type == "text" {
				msg.Texts = append(msg.Texts, content.Text.Value)
			}
		}
		messages = append(messages, msg)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list messages on thread %s: %w", threadID, err)
	}
	return messages, nil
}

// ListRunSteps returns run step diagnostics.
func (c *Client) ListRunSteps(ctx context.Context, threadID, runID string) ([]remote.RunStep, error) {
	iter := c.client.Beta.Threads.Runs.Steps.ListAutoPaging(ctx, threadID, runID, openai.BetaThreadRunStepListParams{})
	var steps []remote.RunStep
	for iter.Next() {
		s := iter.Current()
		steps = append(steps, remote.RunStep{ID: s.ID, Type: string(s.Type), Status: string(s.Status)})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list run steps for run %s: %w", runID, err)
	}
	return steps, nil
}

func normalizeRun(run *openai.Run) remote.Run {
	return remote.Run{ID: run.ID, ThreadID: run.ThreadID, Status: normalizeStatus(run.Status)}
}

// normalizeStatus maps vendor run statuses onto the reduced set core logic
// understands. Requires-action and cancelling count as still in progress;
// incomplete counts as failed.
func normalizeStatus(status openai.RunStatus) remote.RunStatus {
	switch status {
	case openai.RunStatusQueued:
		return remote.StatusQueued
	case openai.RunStatusCompleted:
		return remote.StatusCompleted
	case openai.RunStatusFailed, openai.RunStatusIncomplete:
		return remote.StatusFailed
	case openai.RunStatusCancelled:
		return remote.StatusCancelled
	case openai.RunStatusExpired:
		return remote.StatusExpired
	default:
		return remote.StatusInProgress
	}
}
