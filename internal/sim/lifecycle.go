package sim

import (
	"context"
	"time"

	"go.uber.org/zap"

	"driftlab.io/driftlab/internal/metrics"
	"driftlab.io/driftlab/internal/pkg/logger"
	"driftlab.io/driftlab/internal/pkg/worker"
)

// Stage is one timed step of a lifecycle: wait Dwell, then apply the
// transition. Apply runs under the entity store's lock via its closure
// and reports whether the entity still existed.
type Stage struct {
	Dwell time.Duration
	Apply func() bool
}

// Branch is the probabilistic terminal step: after Dwell, one uniform
// draw picks Success (probability SuccessRate) or Failure. Both are
// valid permanent data states, not engine faults.
type Branch struct {
	Dwell       time.Duration
	SuccessRate float64
	Success     func() bool
	Failure     func() bool
}

// Lifecycle is an ordered list of intermediate stages ending in a
// terminal branch. Within one entity the stages are strictly ordered:
// each dwell completes and its mutation commits before the next begins.
// Across entities there is no ordering guarantee.
type Lifecycle struct {
	Kind   string
	ID     string
	Stages []Stage
	Branch Branch
}

// startLifecycle drives lc on a detached pool task. The caller's request
// returns immediately; there is no handle and no cancellation. A stage
// whose Apply finds the entity deleted ends the run silently. A reset
// between stages likewise ends the run: the captured epoch no longer
// matches and the remaining transitions' effects must not materialize.
func (s *Simulator) startLifecycle(lc Lifecycle) {
	epoch := s.currentEpoch()

	err := s.pool.SubmitDetached(func(ctx context.Context) {
		for _, stage := range lc.Stages {
			if !s.advance(ctx, epoch, lc.Kind, stage.Dwell, stage.Apply) {
				return
			}
		}

		br := lc.Branch
		s.advance(ctx, epoch, lc.Kind, br.Dwell, func() bool {
			// The draw happens at fire time, not schedule time.
			if s.Chance(br.SuccessRate) {
				return br.Success()
			}
			return br.Failure()
		})
	})
	if err != nil {
		logger.Warn("Lifecycle task rejected",
			zap.String("kind", lc.Kind),
			zap.String("id", lc.ID),
			zap.Error(err),
		)
	}
}

// advance sleeps through one dwell then applies the transition. It
// reports whether the lifecycle should continue.
func (s *Simulator) advance(ctx context.Context, epoch uint64, kind string, dwell time.Duration, apply func() bool) bool {
	if !worker.Sleep(ctx, dwell) {
		return false
	}
	if !s.sameEpoch(epoch) {
		return false
	}
	if !apply() {
		metrics.TransitionsSkipped.WithLabelValues(kind).Inc()
		return false
	}
	return true
}
