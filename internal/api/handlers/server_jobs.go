package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateJobRequest is the body for POST /api/jobs. Delay is in seconds;
// zero means the configured default.
type CreateJobRequest struct {
	JobType    string         `json:"job_type" binding:"required"`
	Parameters map[string]any `json:"parameters"`
	Delay      int            `json:"delay" binding:"min=0"`
}

// CreateJob handles POST /api/jobs. 202: the job is accepted, execution
// happens in the background.
func (s *Server) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, err.Error()))
		return
	}

	job := s.sim.CreateJob(req.JobType, req.Parameters, time.Duration(req.Delay)*time.Second)
	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.ID,
		"status": job.Status,
	})
}

// GetJob handles GET /api/jobs/:id.
func (s *Server) GetJob(c *gin.Context) {
	job, err := s.sim.GetJob(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// GetJobResult handles GET /api/jobs/:id/result. 409 until completed.
func (s *Server) GetJobResult(c *gin.Context) {
	result, err := s.sim.JobResult(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
