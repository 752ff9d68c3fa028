// Package api exposes the orchestrator over HTTP: a health probe, a chat
// endpoint that routes and runs queries, and agent pool management.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hupe1980/payrouter"
	"github.com/hupe1980/payrouter/core"
	"github.com/hupe1980/payrouter/logging"
)

// Orchestrator is the surface the API needs from the routing facade. Narrow
// so handler tests can stub it.
type Orchestrator interface {
	EnsureAgentsDeployed(ctx context.Context) error
	AgentIDs() map[core.Role]string
	PurgeAgents(ctx context.Context, keepIDs ...string) error
	RouteRequest(ctx context.Context, query string, optFns ...func(o *payrouter.RequestOptions)) payrouter.Response
}

var _ Orchestrator = (*payrouter.Orchestrator)(nil)

// Options configure the HTTP server.
type Options struct {
	// Debug keeps gin in debug mode.
	Debug bool

	Logger logging.Logger
}

// Server wires the orchestrator into a gin engine.
type Server struct {
	engine *gin.Engine
	orch   Orchestrator
	opts   Options
}

// New creates the HTTP server around the orchestrator.
func New(orch Orchestrator, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID())

	s := &Server{engine: engine, orch: orch, opts: opts}
	s.routes()
	return s
}

// Handler returns the http.Handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on the given address until the listener fails.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.health)
	api.POST("/chat", s.chat)
	api.POST("/deploy", s.deploy)
	api.GET("/agents", s.agents)
	api.DELETE("/agents", s.purge)
}

// requestID tags every request so log lines and responses correlate.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type chatRequest struct {
	Query        string            `json:"query" binding:"required"`
	Role         string            `json:"role"`
	Parameters   map[string]string `json:"parameters"`
	ThreadID     string            `json:"thread_id"`
	DisableTools bool              `json:"disable_tools"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := s.orch.RouteRequest(c.Request.Context(), req.Query, func(o *payrouter.RequestOptions) {
		o.Role = core.Role(req.Role)
		o.Parameters = req.Parameters
		o.ThreadID = req.ThreadID
		o.DisableTools = req.DisableTools
	})

	if !resp.Outcome.OK() {
		s.opts.Logger.Error("chat request failed",
			"requestID", c.GetString("request_id"), "kind", resp.Outcome.Err.Kind, "error", resp.Outcome.Err.Message)
		c.JSON(statusForKind(resp.Outcome.Err.Kind), resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) deploy(c *gin.Context) {
	if err := s.orch.EnsureAgentsDeployed(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": s.orch.AgentIDs()})
}

func (s *Server) agents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": s.orch.AgentIDs()})
}

func (s *Server) purge(c *gin.Context) {
	if err := s.orch.PurgeAgents(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "purged"})
}

// statusForKind maps structured error kinds onto HTTP statuses.
func statusForKind(kind core.ErrorKind) int {
	switch kind {
	case core.KindConfiguration:
		return http.StatusInternalServerError
	case core.KindAgentResolution:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
