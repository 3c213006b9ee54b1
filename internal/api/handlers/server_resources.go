package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateResourceRequest is the body for POST /api/resources.
type CreateResourceRequest struct {
	ResourceType string         `json:"resource_type" binding:"required"`
	Config       map[string]any `json:"config"`
}

// CreateResource handles POST /api/resources. 202: provisioning runs in
// the background.
func (s *Server) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, err.Error()))
		return
	}

	res := s.sim.CreateResource(req.ResourceType, req.Config)
	c.JSON(http.StatusAccepted, gin.H{
		"resource_id": res.ID,
		"status":      res.Status,
	})
}

// GetResource handles GET /api/resources/:id.
func (s *Server) GetResource(c *gin.Context) {
	res, err := s.sim.GetResource(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConnectResource handles POST /api/resources/:id/connect. 503 until
// the resource reaches ready.
func (s *Server) ConnectResource(c *gin.Context) {
	conn, err := s.sim.ConnectResource(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, conn)
}
