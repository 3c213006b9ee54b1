// Package worker provides goroutine pool management.
//
// Naked goroutines are forbidden in this codebase: every deferred task
// (lifecycle drivers, propagation tiers, timer callbacks) goes through the
// Pool so panics are recovered and shutdown is bounded.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"driftlab.io/driftlab/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function. Detached tasks receive the
// service lifecycle context and should check ctx.Done() at blocking points.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with a service lifecycle context for detached
// fire-and-forget tasks.
type Pool struct {
	pool *ants.Pool

	// serviceCtx is the service lifecycle context for detached tasks.
	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// Config contains worker pool configuration.
type Config struct {
	Size int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{Size: 256}
}

// NewPool creates the worker pool.
func NewPool(ctx context.Context, cfg Config) (*Pool, error) {
	serviceCtx, serviceCancel := context.WithCancel(ctx)

	panicHandler := func(p interface{}) {
		logger.Error("Worker panic recovered",
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	pool, err := ants.NewPool(cfg.Size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(30*time.Second),
	)
	if err != nil {
		serviceCancel()
		return nil, err
	}

	return &Pool{
		pool:          pool,
		serviceCtx:    serviceCtx,
		serviceCancel: serviceCancel,
	}, nil
}

// SubmitDetached submits a detached background task. Detached tasks use
// the service lifecycle context instead of a request context: the
// originating HTTP call returns long before the task runs, and there is
// no handle to wait on or cancel; only process shutdown stops them.
func (p *Pool) SubmitDetached(task Task) error {
	return p.pool.Submit(func() {
		select {
		case <-p.serviceCtx.Done():
			logger.Debug("Detached task skipped: service shutting down")
			return
		default:
		}
		task(p.serviceCtx)
	})
}

// SubmitAfter schedules a detached task to run once delay has elapsed.
// The timer itself holds no pool worker; the task enters the pool when it
// fires. Scheduled tasks are never cancelled: a task made moot by later
// state changes must detect that at fire time and become a no-op.
func (p *Pool) SubmitAfter(delay time.Duration, task Task) {
	if delay <= 0 {
		if err := p.SubmitDetached(task); err != nil {
			logger.Debug("Scheduled task dropped", zap.Error(err))
		}
		return
	}
	time.AfterFunc(delay, func() {
		if err := p.SubmitDetached(task); err != nil {
			// Pool released during shutdown; the task's effects no
			// longer matter.
			logger.Debug("Scheduled task dropped", zap.Error(err))
		}
	})
}

// Sleep blocks until d has elapsed or the context is cancelled, and
// reports whether the full delay elapsed. It is the only blocking
// operation a detached task is allowed to perform.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Shutdown cancels the service context and waits for running tasks.
func (p *Pool) Shutdown() {
	p.serviceCancel()

	const shutdownTimeout = 10 * time.Second
	if err := p.pool.ReleaseTimeout(shutdownTimeout); err != nil {
		logger.Warn("Worker pool shutdown timeout", zap.Error(err))
	}
}

// Metrics returns pool metrics for observability.
func (p *Pool) Metrics() map[string]int {
	return map[string]int{
		"running": p.pool.Running(),
		"free":    p.pool.Free(),
		"cap":     p.pool.Cap(),
	}
}
