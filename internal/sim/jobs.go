package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/metrics"
	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateJob enqueues a job and starts its background execution. delay is
// how long the running stage lasts; zero or negative means the default.
func (s *Simulator) CreateJob(jobType string, parameters map[string]any, delay time.Duration) domain.Job {
	if delay <= 0 {
		delay = s.cfg.JobDefaultDelay
	}
	job := domain.Job{
		ID:         uuid.NewString(),
		JobType:    jobType,
		Parameters: parameters,
		Status:     domain.JobQueued,
		CreatedAt:  domain.Timestamp(),
	}
	s.jobs.Put(job.ID, job)
	metrics.EntitiesCreated.WithLabelValues("job").Inc()

	s.startLifecycle(s.jobLifecycle(job.ID, delay))
	return job
}

// jobLifecycle: queued →(0s)→ running →(delay)→ {completed p=0.85 | failed}.
// The running transition fires immediately; started_at is stamped there.
func (s *Simulator) jobLifecycle(id string, delay time.Duration) Lifecycle {
	return Lifecycle{
		Kind: "job",
		ID:   id,
		Stages: []Stage{
			{
				Dwell: 0,
				Apply: func() bool {
					return s.applyJob(id, domain.JobRunning, func(j *domain.Job) {
						j.Status = domain.JobRunning
						j.StartedAt = domain.Timestamp()
					})
				},
			},
		},
		Branch: Branch{
			Dwell:       delay,
			SuccessRate: s.cfg.JobSuccessRate,
			Success: func() bool {
				return s.applyJob(id, domain.JobCompleted, func(j *domain.Job) {
					j.Status = domain.JobCompleted
					j.Result = map[string]any{
						"output": fmt.Sprintf("Job %s completed successfully", id),
					}
					j.CompletedAt = domain.Timestamp()
				})
			},
			Failure: func() bool {
				return s.applyJob(id, domain.JobFailed, func(j *domain.Job) {
					j.Status = domain.JobFailed
					j.Error = "Job execution failed"
					j.CompletedAt = domain.Timestamp()
				})
			},
		},
	}
}

func (s *Simulator) applyJob(id string, status domain.JobStatus, mutate func(*domain.Job)) bool {
	_, found, _ := s.jobs.Update(id, func(j *domain.Job) error {
		mutate(j)
		return nil
	})
	if found {
		metrics.Transitions.WithLabelValues("job", string(status)).Inc()
	}
	return found
}

// GetJob returns the job or NotFound.
func (s *Simulator) GetJob(id string) (domain.Job, error) {
	job, ok := s.jobs.Get(id)
	if !ok {
		return domain.Job{}, apperrors.ErrJobNotFound(id)
	}
	return job, nil
}

// JobResult returns the result payload, readable only once the job has
// completed. A failed job keeps returning the transition error: the
// failure itself is data, not something the engine retries.
func (s *Simulator) JobResult(id string) (map[string]any, error) {
	job, ok := s.jobs.Get(id)
	if !ok {
		return nil, apperrors.ErrJobNotFound(id)
	}
	if job.Status != domain.JobCompleted {
		return nil, apperrors.ErrInvalidTransition(fmt.Sprintf(
			"Job result not available. Current status: %s", job.Status))
	}
	return job.Result, nil
}
