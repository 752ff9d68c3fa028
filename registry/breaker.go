package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/hupe1980/payrouter/logging"
	"github.com/hupe1980/payrouter/remote"
)

// BreakerOptions configure the circuit breaker wrapping a directory.
type BreakerOptions struct {
	// MaxFailures is the number of consecutive failures before the circuit
	// opens.
	MaxFailures uint32
	// Timeout is how long the circuit stays open before a half-open probe.
	Timeout time.Duration
	// Interval is the cyclic period of the closed state for clearing
	// failure counts.
	Interval time.Duration

	Logger logging.Logger
}

// BreakerDirectory wraps a remote.Directory with a circuit breaker so that a
// struggling directory endpoint fails fast instead of absorbing a retry
// storm during provisioning sweeps.
type BreakerDirectory struct {
	inner   remote.Directory
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerDirectory wraps inner with a circuit breaker.
func NewBreakerDirectory(inner remote.Directory, optFns ...func(o *BreakerOptions)) *BreakerDirectory {
	opts := BreakerOptions{
		MaxFailures: 5,
		Timeout:     30 * time.Second,
		Interval:    60 * time.Second,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "agent-directory",
		MaxRequests: 1,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			opts.Logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &BreakerDirectory{inner: inner, breaker: cb}
}

var _ remote.Directory = (*BreakerDirectory)(nil)

// State returns the current breaker state for monitoring.
func (d *BreakerDirectory) State() gobreaker.State {
	return d.breaker.State()
}

// CreateAgent implements remote.Directory.
func (d *BreakerDirectory) CreateAgent(ctx context.Context, spec remote.AgentSpec) (remote.Agent, error) {
	res, err := d.breaker.Execute(func() (any, error) {
		return d.inner.CreateAgent(ctx, spec)
	})
	if err != nil {
		return remote.Agent{}, wrapBreakerErr(err)
	}
	return res.(remote.Agent), nil
}

// GetAgent implements remote.Directory.
func (d *BreakerDirectory) GetAgent(ctx context.Context, id string) (remote.Agent, error) {
	res, err := d.breaker.Execute(func() (any, error) {
		return d.inner.GetAgent(ctx, id)
	})
	if err != nil {
		return remote.Agent{}, wrapBreakerErr(err)
	}
	return res.(remote.Agent), nil
}

// ListAgents implements remote.Directory.
func (d *BreakerDirectory) ListAgents(ctx context.Context) ([]remote.Agent, error) {
	res, err := d.breaker.Execute(func() (any, error) {
		return d.inner.ListAgents(ctx)
	})
	if err != nil {
		return nil, wrapBreakerErr(err)
	}
	return res.([]remote.Agent), nil
}

// DeleteAgent implements remote.Directory.
func (d *BreakerDirectory) DeleteAgent(ctx context.Context, id string) error {
	_, err := d.breaker.Execute(func() (any, error) {
		return nil, d.inner.DeleteAgent(ctx, id)
	})
	if err != nil {
		return wrapBreakerErr(err)
	}
	return nil
}

func wrapBreakerErr(err error) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("agent directory circuit open: %w", err)
	}
	return err
}
