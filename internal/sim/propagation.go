package sim

import (
	"context"
	"time"

	"driftlab.io/driftlab/internal/metrics"
)

// View tier suffixes. A view name is "<kind>_<tier>".
const (
	ViewImmediate = "immediate"
	ViewCached    = "cached"
	ViewSearch    = "search"
	ViewAnalytics = "analytics"
)

// ViewName builds the view table key for a kind and tier.
func ViewName(kind, tier string) string {
	return kind + "_" + tier
}

// propagate makes one logical write visible across the consistency tiers.
// The immediate view is written synchronously with the caller; the cached,
// search and analytics tiers are three independent scheduled writes at
// their absolute offsets from write time. The payload is the snapshot
// taken here: later mutations of the source entity never reach any view,
// and nothing ever invalidates a written entry.
//
// The tier writes are non-cancellable by design. The only thing that
// stops one is a reset having moved the epoch before it fires.
func (s *Simulator) propagate(kind, id string, payload any) {
	s.views.Put(ViewName(kind, ViewImmediate), id, payload)
	metrics.PropagationWrites.WithLabelValues(ViewImmediate).Inc()

	epoch := s.currentEpoch()
	tiers := []struct {
		tier  string
		after time.Duration
	}{
		{ViewCached, s.cfg.CachedAfter},
		{ViewSearch, s.cfg.SearchAfter},
		{ViewAnalytics, s.cfg.AnalyticsAfter},
	}

	for _, t := range tiers {
		view := ViewName(kind, t.tier)
		tier := t.tier
		s.pool.SubmitAfter(t.after, func(ctx context.Context) {
			if !s.sameEpoch(epoch) {
				return
			}
			s.views.Put(view, id, payload)
			metrics.PropagationWrites.WithLabelValues(tier).Inc()
		})
	}
}
