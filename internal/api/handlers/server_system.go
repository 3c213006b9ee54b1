package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/metrics"
	apperrors "driftlab.io/driftlab/internal/pkg/errors"
	"driftlab.io/driftlab/internal/pkg/logger"
)

// GetRoot handles GET / with API information.
func (s *Server) GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "DriftLab",
		"version":     "1.0.0",
		"description": "Controllable simulator of asynchronous backend behavior",
		"endpoints": gin.H{
			"orders":    "/api/orders - Order processing workflow",
			"jobs":      "/api/jobs - Async job queue",
			"resources": "/api/resources - Resource provisioning",
			"users":     "/api/users - User profiles with eventual consistency",
			"comments":  "/api/comments - Stored content tracking",
			"webhooks":  "/api/webhooks - Callback simulation",
			"analytics": "/api/analytics - Delayed data views",
			"graphql":   "/graphql - GraphQL mirror",
			"xml":       "/xml - XML mirror",
		},
	})
}

// GetHealth handles GET /api/health with per-store counts and worker
// pool gauges.
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": domain.Timestamp(),
		"stats":     s.sim.Stats(),
		"workers":   s.pool.Metrics(),
	})
}

// Reset handles POST /api/reset. The clear is complete the moment the
// response is written; timers still pending from before the reset fire
// as no-ops.
func (s *Server) Reset(c *gin.Context) {
	s.sim.Reset()
	metrics.Resets.Inc()
	logger.Info("State reset")
	c.JSON(http.StatusOK, gin.H{"message": "State reset successfully"})
}

// GetFlaky handles GET /api/flaky: fails on half the calls so clients
// can exercise retry logic against a real 503.
func (s *Server) GetFlaky(c *gin.Context) {
	if s.sim.Chance(0.5) {
		metrics.FaultInjections.WithLabelValues("flaky", "fail").Inc()
		_ = c.Error(apperrors.Unavailable(apperrors.CodeServiceFlaky,
			"Service temporarily unavailable"))
		return
	}
	metrics.FaultInjections.WithLabelValues("flaky", "pass").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Request succeeded"})
}

// GetRateLimited handles GET /api/rate-limited: 30% of calls see a 429.
func (s *Server) GetRateLimited(c *gin.Context) {
	if s.sim.Chance(0.3) {
		metrics.FaultInjections.WithLabelValues("rate-limited", "fail").Inc()
		_ = c.Error(apperrors.TooManyRequests(apperrors.CodeRateLimited,
			"Rate limit exceeded"))
		return
	}
	metrics.FaultInjections.WithLabelValues("rate-limited", "pass").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
