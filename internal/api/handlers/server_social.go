package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateCommentRequest is the body for POST /api/comments. Content is
// stored verbatim; the fixture never sanitizes it.
type CreateCommentRequest struct {
	PostID  string `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

// CreateComment handles POST /api/comments.
func (s *Server) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, err.Error()))
		return
	}

	comment := s.sim.CreateComment(req.PostID, req.Content, req.Author)
	c.JSON(http.StatusCreated, gin.H{"comment_id": comment.ID})
}

// GetPostComments handles GET /api/posts/:id/comments.
func (s *Server) GetPostComments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"comments": s.sim.CommentsForPost(c.Param("id")),
	})
}

// GetRecentComments handles GET /api/comments/recent, the last 10 across
// all posts.
func (s *Server) GetRecentComments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"comments": s.sim.RecentComments()})
}

// RegisterWebhook handles POST /api/webhooks/register. Parameters come
// from the query string, matching the published contract, and the URL is
// recorded verbatim.
func (s *Server) RegisterWebhook(c *gin.Context) {
	url := c.Query("url")
	eventType := c.Query("event_type")
	if url == "" || eventType == "" {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest,
			"url and event_type query parameters are required"))
		return
	}

	hook := s.sim.RegisterWebhook(url, eventType)
	c.JSON(http.StatusOK, gin.H{"webhook_id": hook.ID})
}

// GetWebhookEvents handles GET /api/webhooks/events.
func (s *Server) GetWebhookEvents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"webhooks": s.sim.Webhooks()})
}
