// Package sim is the DriftLab core: a controllable simulator of
// asynchronous backend behavior. Entities move through multi-stage
// lifecycles on background timers with probabilistic terminal outcomes,
// and every profile write fans out into independently delayed read views.
//
// The Simulator is the explicit context object the whole engine hangs
// off: it owns every keyed store, the append-only logs, the view table
// and the seeded random source, and it is passed to every transport
// adapter instead of living in package globals. State is volatile and
// process-local; Reset is the only lifecycle operation.
package sim

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/pkg/worker"
	"driftlab.io/driftlab/internal/store"
)

// Config carries the engine's timing and probability knobs. Defaults
// reproduce the published fixture contract.
type Config struct {
	OrderProcessingDelay time.Duration
	OrderCompletionDelay time.Duration
	OrderSuccessRate     float64

	JobDefaultDelay time.Duration
	JobSuccessRate  float64

	ResourceInitDelay   time.Duration
	ResourceReadyDelay  time.Duration
	ResourceSuccessRate float64

	CachedAfter    time.Duration
	SearchAfter    time.Duration
	AnalyticsAfter time.Duration

	// Seed for outcome branches. 0 seeds from the OS.
	Seed uint64
}

// DefaultConfig returns the published timing contract.
func DefaultConfig() Config {
	return Config{
		OrderProcessingDelay: 2 * time.Second,
		OrderCompletionDelay: 3 * time.Second,
		OrderSuccessRate:     0.9,
		JobDefaultDelay:      5 * time.Second,
		JobSuccessRate:       0.85,
		ResourceInitDelay:    2 * time.Second,
		ResourceReadyDelay:   4 * time.Second,
		ResourceSuccessRate:  0.8,
		CachedAfter:          2 * time.Second,
		SearchAfter:          5 * time.Second,
		AnalyticsAfter:       10 * time.Second,
	}
}

// Simulator owns all shared fixture state.
type Simulator struct {
	cfg  Config
	pool *worker.Pool

	orders    *store.Store[domain.Order]
	jobs      *store.Store[domain.Job]
	resources *store.Store[domain.Resource]
	profiles  *store.Store[domain.Profile]
	comments  *store.Log[domain.Comment]
	webhooks  *store.Log[domain.Webhook]
	activity  *store.Log[domain.Event]
	views     *store.ViewTable

	// epoch increments on Reset. Deferred tasks capture it at schedule
	// time and become no-ops once it moves, so timers scheduled before a
	// reset cannot resurrect cleared state.
	epoch atomic.Uint64

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a Simulator. The pool runs every deferred task; callers
// keep ownership of it.
func New(cfg Config, pool *worker.Pool) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulator{
		cfg:       cfg,
		pool:      pool,
		orders:    store.New[domain.Order](),
		jobs:      store.New[domain.Job](),
		resources: store.New[domain.Resource](),
		profiles:  store.New[domain.Profile](),
		comments:  store.NewLog[domain.Comment](),
		webhooks:  store.NewLog[domain.Webhook](),
		activity:  store.NewLog[domain.Event](),
		views:     store.NewViewTable(),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Chance draws one uniform value and reports whether it fell below p.
// All probabilistic branches go through here so a seeded simulator is
// reproducible.
func (s *Simulator) Chance(p float64) bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < p
}

// Stats returns per-store record counts.
func (s *Simulator) Stats() map[string]int {
	return map[string]int{
		"orders":    s.orders.Len(),
		"jobs":      s.jobs.Len(),
		"resources": s.resources.Len(),
		"users":     s.profiles.Len(),
		"comments":  s.comments.Len(),
	}
}

// Reset clears every store, log and view. Pending timers are not
// cancelled; they detect the epoch change at fire time and do nothing,
// so the clear is observably complete the moment Reset returns.
func (s *Simulator) Reset() {
	s.epoch.Add(1)
	s.orders.Clear()
	s.jobs.Clear()
	s.resources.Clear()
	s.profiles.Clear()
	s.comments.Clear()
	s.webhooks.Clear()
	s.activity.Clear()
	s.views.Clear()
}

// currentEpoch is captured by deferred tasks at schedule time.
func (s *Simulator) currentEpoch() uint64 {
	return s.epoch.Load()
}

// sameEpoch reports whether no reset happened since the capture.
func (s *Simulator) sameEpoch(captured uint64) bool {
	return s.epoch.Load() == captured
}
