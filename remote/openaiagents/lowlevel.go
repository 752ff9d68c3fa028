package openaiagents

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/hupe1980/payrouter/remote"
)

// LowLevel implements remote.Directory using the client's raw request
// helpers instead of the typed assistants service. The registry uses it as
// the secondary provisioning path when the primary directory call fails.
type LowLevel struct {
	client *openai.Client
}

// NewLowLevel creates a raw-request directory from an existing client.
func NewLowLevel(client *openai.Client) *LowLevel {
	return &LowLevel{client: client}
}

var _ remote.Directory = (*LowLevel)(nil)

// betaHeader opts every raw call into the assistants API surface.
func betaHeader() option.RequestOption {
	return option.WithHeader("OpenAI-Beta", "assistants=v2")
}

type rawAgent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawAgentList struct {
	Data []rawAgent `json:"data"`
}

// CreateAgent provisions an assistant via a raw POST.
func (l *LowLevel) CreateAgent(ctx context.Context, spec remote.AgentSpec) (remote.Agent, error) {
	body := map[string]any{
		"model":        spec.Model,
		"name":         spec.Name,
		"instructions": spec.Instructions,
	}
	if spec.Tools.CodeInterpreter {
		body["tools"] = []map[string]string{{"type": "code_interpreter"}}
		if len(spec.Tools.FileIDs) > 0 {
			body["tool_resources"] = map[string]any{
				"code_interpreter": map[string]any{"file_ids": spec.Tools.FileIDs},
			}
		}
	}
	var out rawAgent
	if err := l.client.Post(ctx, "assistants", body, &out, betaHeader()); err != nil {
		return remote.Agent{}, fmt.Errorf("raw create agent %q: %w", spec.Name, err)
	}
	if out.ID == "" {
		return remote.Agent{}, fmt.Errorf("raw create agent %q: empty id in response", spec.Name)
	}
	return remote.Agent{ID: out.ID, Name: out.Name}, nil
}

// GetAgent fetches an assistant via a raw GET.
func (l *LowLevel) GetAgent(ctx context.Context, id string) (remote.Agent, error) {
	var out rawAgent
	if err := l.client.Get(ctx, "assistants/"+id, nil, &out, betaHeader()); err != nil {
		return remote.Agent{}, fmt.Errorf("raw get agent %s: %w", id, err)
	}
	return remote.Agent{ID: out.ID, Name: out.Name}, nil
}

// ListAgents lists assistants via a raw GET. Only the first page is
// returned; the fallback path trades completeness for simplicity.
func (l *LowLevel) ListAgents(ctx context.Context) ([]remote.Agent, error) {
	var out rawAgentList
	if err := l.client.Get(ctx, "assistants", nil, &out, betaHeader()); err != nil {
		return nil, fmt.Errorf("raw list agents: %w", err)
	}
	agents := make([]remote.Agent, 0, len(out.Data))
	for _, a := range out.Data {
		agents = append(agents, remote.Agent{ID: a.ID, Name: a.Name})
	}
	return agents, nil
}

// DeleteAgent removes an assistant via a raw DELETE.
func (l *LowLevel) DeleteAgent(ctx context.Context, id string) error {
	if err := l.client.Delete(ctx, "assistants/"+id, nil, nil, betaHeader()); err != nil {
		return fmt.Errorf("raw delete agent %s: %w", id, err)
	}
	return nil
}
