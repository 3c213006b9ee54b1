package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateUserRequest is the body for POST /api/users.
type CreateUserRequest struct {
	Username string         `json:"username" binding:"required"`
	Bio      string         `json:"bio"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata"`
}

// CreateUser handles POST /api/users. The profile is immediately readable
// from the canonical store; the delayed views fill in over the next
// seconds.
func (s *Server) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, err.Error()))
		return
	}

	profile := s.sim.CreateProfile(req.Username, req.Bio, req.Email, req.Metadata)
	c.JSON(http.StatusCreated, gin.H{
		"user_id":  profile.ID,
		"username": profile.Username,
	})
}

// GetUser handles GET /api/users/:id from the canonical store.
func (s *Server) GetUser(c *gin.Context) {
	profile, err := s.sim.GetProfile(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUserPublic handles GET /api/users/:id/public from the cached view.
// Returns NOT_YET_PROPAGATED while the profile exists but the cached
// tier has not caught up.
func (s *Server) GetUserPublic(c *gin.Context) {
	public, err := s.sim.PublicProfile(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, public)
}

// SearchUsers handles GET /api/search?q=. Reads the search view only, so
// freshly created profiles are invisible until that tier fills.
func (s *Server) SearchUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"results": s.sim.SearchProfiles(c.Query("q")),
	})
}

// GetUserAnalytics handles GET /api/analytics/users from the analytics
// view, the slowest tier.
func (s *Server) GetUserAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, s.sim.UserAnalytics())
}

// GetFeed handles GET /api/feed.
func (s *Server) GetFeed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"feed": s.sim.Feed()})
}
