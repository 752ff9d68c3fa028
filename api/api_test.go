package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/payrouter"
	"github.com/hupe1980/payrouter/core"
)

type stubOrchestrator struct {
	deployErr error
	purgeErr  error
	response  payrouter.Response

	lastQuery string
	lastOpts  payrouter.RequestOptions
}

func (s *stubOrchestrator) EnsureAgentsDeployed(ctx context.Context) error { return s.deployErr }

func (s *stubOrchestrator) AgentIDs() map[core.Role]string {
	return map[core.Role]string{core.RolePolicyExtraction: "asst_1"}
}

func (s *stubOrchestrator) PurgeAgents(ctx context.Context, keepIDs ...string) error {
	return s.purgeErr
}

func (s *stubOrchestrator) RouteRequest(ctx context.Context, query string, optFns ...func(o *payrouter.RequestOptions)) payrouter.Response {
	s.lastQuery = query
	for _, fn := range optFns {
		fn(&s.lastOpts)
	}
	return s.response
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := New(&stubOrchestrator{})

	rec := doJSON(t, s, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestChatSuccess(t *testing.T) {
	orch := &stubOrchestrator{
		response: payrouter.Response{
			Decision: core.RoutingDecision{Primary: core.RolePayCalculation, Confidence: 0.9, Source: core.SourceLLM},
			Outcome:  core.Success("42 hours of overtime", "thread-1", "run-1"),
		},
	}
	s := New(orch)

	rec := doJSON(t, s, http.MethodPost, "/api/chat", map[string]any{
		"query":      "how much overtime?",
		"parameters": map[string]string{"employee_id": "E042"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "how much overtime?", orch.lastQuery)
	assert.Equal(t, "E042", orch.lastOpts.Parameters["employee_id"])

	var resp payrouter.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "42 hours of overtime", resp.Outcome.Result)
	assert.Equal(t, core.RolePayCalculation, resp.Decision.Primary)
}

func TestChatMissingQuery(t *testing.T) {
	s := New(&stubOrchestrator{})

	rec := doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"role": "analytics"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatErrorStatusMapping(t *testing.T) {
	tests := []struct {
		kind core.ErrorKind
		want int
	}{
		{core.KindConfiguration, http.StatusInternalServerError},
		{core.KindAgentResolution, http.StatusUnprocessableEntity},
		{core.KindRunTimeout, http.StatusBadGateway},
		{core.KindRunTerminal, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			orch := &stubOrchestrator{
				response: payrouter.Response{Outcome: core.Failure(core.Errf(tt.kind, "boom"), "", "")},
			}
			s := New(orch)

			rec := doJSON(t, s, http.MethodPost, "/api/chat", map[string]string{"query": "q"})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestDeploy(t *testing.T) {
	s := New(&stubOrchestrator{})

	rec := doJSON(t, s, http.MethodPost, "/api/deploy", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "asst_1")
}

func TestDeployFailure(t *testing.T) {
	s := New(&stubOrchestrator{deployErr: core.Errf(core.KindProvisioning, "no agents could be resolved or provisioned")})

	rec := doJSON(t, s, http.MethodPost, "/api/deploy", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAgentsAndPurge(t *testing.T) {
	s := New(&stubOrchestrator{})

	rec := doJSON(t, s, http.MethodGet, "/api/agents", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "policy_extraction")

	rec = doJSON(t, s, http.MethodDelete, "/api/agents", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"purged"}`, rec.Body.String())
}

func TestRequestIDPassThrough(t *testing.T) {
	s := New(&stubOrchestrator{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
