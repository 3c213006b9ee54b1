package sim

import (
	"sort"

	"driftlab.io/driftlab/internal/domain"
)

// feedLimit bounds the merged feed; activityTail bounds how much of the
// raw activity log is merged in.
const (
	feedLimit    = 20
	activityTail = 10
)

// Feed merges one synthesized joined event per existing profile with the
// most recent activity-log entries, newest first, capped at feedLimit.
// Ordering is a string compare on the ISO-8601 timestamps (equivalent to
// chronological for the fixed format); entries without a timestamp
// sort last.
func (s *Simulator) Feed() []domain.Event {
	items := make([]domain.Event, 0)
	for _, profile := range s.profiles.Snapshot() {
		items = append(items, domain.JoinedEvent(profile))
	}
	items = append(items, s.activity.Tail(activityTail)...)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})

	if len(items) > feedLimit {
		items = items[:feedLimit]
	}
	return items
}
