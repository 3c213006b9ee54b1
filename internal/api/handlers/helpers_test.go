package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"driftlab.io/driftlab/internal/api/middleware"
	"driftlab.io/driftlab/internal/pkg/logger"
	"driftlab.io/driftlab/internal/pkg/worker"
	"driftlab.io/driftlab/internal/sim"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "json")
}

// fastConfig compresses dwell times so lifecycle tests finish quickly,
// and pins every branch to success for determinism.
func fastConfig() sim.Config {
	return sim.Config{
		OrderProcessingDelay: 20 * time.Millisecond,
		OrderCompletionDelay: 30 * time.Millisecond,
		OrderSuccessRate:     1.0,
		JobDefaultDelay:      30 * time.Millisecond,
		JobSuccessRate:       1.0,
		ResourceInitDelay:    20 * time.Millisecond,
		ResourceReadyDelay:   30 * time.Millisecond,
		ResourceSuccessRate:  1.0,
		CachedAfter:          20 * time.Millisecond,
		SearchAfter:          40 * time.Millisecond,
		AnalyticsAfter:       60 * time.Millisecond,
		Seed:                 1,
	}
}

// newTestServer builds a Server over a fast simulator plus a router with
// the full REST surface, the same wiring the app module uses.
func newTestServer(t *testing.T, mutate func(*sim.Config)) (*Server, *gin.Engine) {
	t.Helper()

	pool, err := worker.NewPool(context.Background(), worker.Config{Size: 64})
	require.NoError(t, err)
	t.Cleanup(pool.Shutdown)

	cfg := fastConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	srv := NewServer(ServerDeps{Sim: sim.New(cfg, pool), Pool: pool})

	r := gin.New()
	r.Use(middleware.ErrorHandler())

	r.GET("/", srv.GetRoot)
	api := r.Group("/api")
	{
		api.POST("/orders", srv.CreateOrder)
		api.GET("/orders/:id", srv.GetOrder)
		api.PUT("/orders/:id/ship", srv.ShipOrder)
		api.DELETE("/orders/:id", srv.CancelOrder)

		api.POST("/jobs", srv.CreateJob)
		api.GET("/jobs/:id", srv.GetJob)
		api.GET("/jobs/:id/result", srv.GetJobResult)

		api.POST("/resources", srv.CreateResource)
		api.GET("/resources/:id", srv.GetResource)
		api.POST("/resources/:id/connect", srv.ConnectResource)

		api.POST("/users", srv.CreateUser)
		api.GET("/users/:id", srv.GetUser)
		api.GET("/users/:id/public", srv.GetUserPublic)
		api.GET("/search", srv.SearchUsers)
		api.GET("/analytics/users", srv.GetUserAnalytics)
		api.GET("/feed", srv.GetFeed)

		api.POST("/comments", srv.CreateComment)
		api.GET("/posts/:id/comments", srv.GetPostComments)
		api.GET("/comments/recent", srv.GetRecentComments)

		api.POST("/webhooks/register", srv.RegisterWebhook)
		api.GET("/webhooks/events", srv.GetWebhookEvents)

		api.GET("/flaky", srv.GetFlaky)
		api.GET("/rate-limited", srv.GetRateLimited)

		api.GET("/health", srv.GetHealth)
		api.POST("/reset", srv.Reset)
	}
	return srv, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, code string) {
	t.Helper()
	body := decodeBody(t, w)
	require.Equal(t, code, body["code"], "body: %s", w.Body.String())
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Fail(t, msg)
}
