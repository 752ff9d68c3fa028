package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/payrouter/remote"
)

func TestBreakerDirectoryPassesThrough(t *testing.T) {
	inner := newFakeDirectory()
	bd := NewBreakerDirectory(inner)

	agent, err := bd.CreateAgent(context.Background(), remote.AgentSpec{Name: "policy_extraction_agent"})
	require.NoError(t, err)
	assert.Equal(t, "policy_extraction_agent", agent.Name)

	got, err := bd.GetAgent(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)

	list, err := bd.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, bd.DeleteAgent(context.Background(), agent.ID))
}

func TestBreakerDirectoryOpensAfterConsecutiveFailures(t *testing.T) {
	inner := newFakeDirectory()
	inner.createErr = errors.New("500")
	bd := NewBreakerDirectory(inner, func(o *BreakerOptions) { o.MaxFailures = 2 })

	for i := 0; i < 2; i++ {
		_, err := bd.CreateAgent(context.Background(), remote.AgentSpec{})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, bd.State())

	// Calls now fail fast without reaching the inner directory.
	callsBefore := inner.createCalls
	_, err := bd.CreateAgent(context.Background(), remote.AgentSpec{})
	require.Error(t, err)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, callsBefore, inner.createCalls)
}
