package sim

import (
	"fmt"

	"github.com/google/uuid"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/metrics"
	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateResource starts provisioning a resource. It becomes connectable
// only once the background lifecycle reaches ready.
func (s *Simulator) CreateResource(resourceType string, config map[string]any) domain.Resource {
	now := domain.Timestamp()
	res := domain.Resource{
		ID:           uuid.NewString(),
		ResourceType: resourceType,
		Config:       config,
		Status:       domain.ResourceProvisioning,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.resources.Put(res.ID, res)
	metrics.EntitiesCreated.WithLabelValues("resource").Inc()

	s.startLifecycle(s.resourceLifecycle(res.ID))
	return res
}

// resourceLifecycle: provisioning →(2s)→ initializing →(4s)→ {ready p=0.8 | error}.
func (s *Simulator) resourceLifecycle(id string) Lifecycle {
	return Lifecycle{
		Kind: "resource",
		ID:   id,
		Stages: []Stage{
			{
				Dwell: s.cfg.ResourceInitDelay,
				Apply: func() bool {
					return s.applyResource(id, func(r *domain.Resource) {
						r.Status = domain.ResourceInitializing
					})
				},
			},
		},
		Branch: Branch{
			Dwell:       s.cfg.ResourceReadyDelay,
			SuccessRate: s.cfg.ResourceSuccessRate,
			Success: func() bool {
				return s.applyResource(id, func(r *domain.Resource) {
					r.Status = domain.ResourceReady
					r.Endpoint = fmt.Sprintf("https://resource-%s.example.com", id)
				})
			},
			Failure: func() bool {
				return s.applyResource(id, func(r *domain.Resource) {
					r.Status = domain.ResourceError
					r.Error = "Provisioning failed - insufficient capacity"
				})
			},
		},
	}
}

func (s *Simulator) applyResource(id string, mutate func(*domain.Resource)) bool {
	res, found, _ := s.resources.Update(id, func(r *domain.Resource) error {
		mutate(r)
		r.UpdatedAt = domain.Timestamp()
		return nil
	})
	if found {
		metrics.Transitions.WithLabelValues("resource", string(res.Status)).Inc()
	}
	return found
}

// GetResource returns the resource or NotFound.
func (s *Simulator) GetResource(id string) (domain.Resource, error) {
	res, ok := s.resources.Get(id)
	if !ok {
		return domain.Resource{}, apperrors.ErrResourceNotFound(id)
	}
	return res, nil
}

// ConnectResource hands out the endpoint plus a freshly generated
// credential. Connection is permitted only in ready state; anything else
// is a 503, since "not ready yet" is transient from the caller's side.
func (s *Simulator) ConnectResource(id string) (domain.Connection, error) {
	res, ok := s.resources.Get(id)
	if !ok {
		return domain.Connection{}, apperrors.ErrResourceNotFound(id)
	}
	if res.Status != domain.ResourceReady {
		return domain.Connection{}, apperrors.ErrResourceNotReady(string(res.Status))
	}
	return domain.Connection{
		ConnectionString: res.Endpoint,
		Credentials: domain.Credentials{
			User:  "demo",
			Token: uuid.NewString(),
		},
	}, nil
}
