package sim

import (
	"strings"

	"github.com/google/uuid"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/metrics"
	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// profileKind is the view-group name for profile propagation.
const profileKind = "profile"

// CreateProfile stores the immutable profile and fans it out across the
// consistency tiers. The canonical store and the immediate view see it at
// once; cached, search and analytics lag by their configured offsets.
func (s *Simulator) CreateProfile(username, bio, email string, metadata map[string]any) domain.Profile {
	profile := domain.Profile{
		ID:        uuid.NewString(),
		Username:  username,
		Bio:       bio,
		Email:     email,
		Metadata:  metadata,
		CreatedAt: domain.Timestamp(),
	}
	s.profiles.Put(profile.ID, profile)
	metrics.EntitiesCreated.WithLabelValues("profile").Inc()

	s.propagate(profileKind, profile.ID, profile)
	return profile
}

// GetProfile reads the canonical store, which is always current.
func (s *Simulator) GetProfile(id string) (domain.Profile, error) {
	profile, ok := s.profiles.Get(id)
	if !ok {
		return domain.Profile{}, apperrors.ErrUserNotFound(id)
	}
	return profile, nil
}

// PublicProfile reads the cached view. Before the cached tier's offset
// has elapsed the canonical profile exists but this returns
// NotYetPropagated, deliberately distinguishable from a plain NotFound.
func (s *Simulator) PublicProfile(id string) (domain.PublicProfile, error) {
	v, ok := s.views.Get(ViewName(profileKind, ViewCached), id)
	if !ok {
		if _, exists := s.profiles.Get(id); exists {
			return domain.PublicProfile{}, apperrors.ErrNotYetPropagated(ViewCached)
		}
		return domain.PublicProfile{}, apperrors.ErrUserNotFound(id)
	}
	profile := v.(domain.Profile)
	return domain.PublicProfile{
		Username:  profile.Username,
		Bio:       profile.Bio,
		CreatedAt: profile.CreatedAt,
	}, nil
}

// SearchProfiles matches the query against the search view only, never
// the canonical store. During the propagation window search results
// diverge from live profile reads. That divergence is the product.
// Matching is a naive case-insensitive substring over username and bio.
func (s *Simulator) SearchProfiles(query string) []domain.Profile {
	q := strings.ToLower(query)
	results := make([]domain.Profile, 0)
	for _, v := range s.views.Values(ViewName(profileKind, ViewSearch)) {
		profile, ok := v.(domain.Profile)
		if !ok {
			continue
		}
		haystack := strings.ToLower(profile.Username + " " + profile.Bio)
		if strings.Contains(haystack, q) {
			results = append(results, profile)
		}
	}
	return results
}

// UserAnalytics aggregates over the analytics view, the slowest tier.
func (s *Simulator) UserAnalytics() domain.UserAnalytics {
	users := make([]domain.Profile, 0)
	counts := domain.AggregatedCounts{}
	for _, v := range s.views.Values(ViewName(profileKind, ViewAnalytics)) {
		profile, ok := v.(domain.Profile)
		if !ok {
			continue
		}
		users = append(users, profile)
		if profile.Bio != "" {
			counts.WithBio++
		}
		if profile.Email != "" {
			counts.WithEmail++
		}
	}
	return domain.UserAnalytics{
		TotalUsers: len(users),
		Users:      users,
		Aggregated: counts,
	}
}

// AllProfiles snapshots the canonical profile store.
func (s *Simulator) AllProfiles() []domain.Profile {
	snap := s.profiles.Snapshot()
	out := make([]domain.Profile, 0, len(snap))
	for _, p := range snap {
		out = append(out, p)
	}
	return out
}
