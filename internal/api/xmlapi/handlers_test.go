package xmlapi

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"driftlab.io/driftlab/internal/pkg/logger"
	"driftlab.io/driftlab/internal/pkg/worker"
	"driftlab.io/driftlab/internal/sim"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "json")
}

func newTestRouter(t *testing.T, mutate func(*sim.Config)) (*sim.Simulator, *gin.Engine) {
	t.Helper()

	pool, err := worker.NewPool(context.Background(), worker.Config{Size: 32})
	require.NoError(t, err)
	t.Cleanup(pool.Shutdown)

	cfg := sim.Config{
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
	if mutate != nil {
		mutate(&cfg)
	}
	s := sim.New(cfg, pool)
	srv := NewServer(s)

	r := gin.New()
	x := r.Group("/xml")
	{
		x.POST("/orders", srv.CreateOrder)
		x.GET("/orders/:id", srv.GetOrder)
		x.PUT("/orders/:id/ship", srv.ShipOrder)
		x.POST("/jobs", srv.CreateJob)
		x.GET("/jobs/:id", srv.GetJob)
		x.POST("/resources", srv.CreateResource)
		x.GET("/resources/:id", srv.GetResource)
		x.POST("/users", srv.CreateUser)
		x.GET("/users/:id", srv.GetUser)
		x.POST("/comments", srv.CreateComment)
		x.GET("/posts/:id/comments", srv.GetPostComments)
		x.GET("/feed", srv.GetFeed)
	}
	return s, r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
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

func TestXMLOrder_CreateAndGet(t *testing.T) {
	_, r := newTestRouter(t, func(c *sim.Config) { c.OrderProcessingDelay = time.Hour })

	w := do(t, r, http.MethodPost, "/xml/orders", map[string]any{
		"product_id": "widget-1",
		"quantity":   2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	var created OrderDoc
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.OrderID)
	require.Equal(t, "pending", created.Status)

	got := do(t, r, http.MethodGet, "/xml/orders/"+created.OrderID, nil)
	require.Equal(t, http.StatusOK, got.Code)

	var order OrderDoc
	require.NoError(t, xml.Unmarshal(got.Body.Bytes(), &order))
	require.Equal(t, "widget-1", order.ProductID)
	require.Equal(t, 2, order.Quantity)
}

func TestXMLOrder_NotFoundIsErrorDoc(t *testing.T) {
	_, r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/xml/orders/nope", nil)
	// The mirror reports failures in-band, not via HTTP status.
	require.Equal(t, http.StatusOK, w.Code)

	var doc ErrorDoc
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "Order not found", doc.Message)
}

func TestXMLShipOrder_StateViolation(t *testing.T) {
	s, r := newTestRouter(t, func(c *sim.Config) { c.OrderProcessingDelay = time.Hour })

	order := s.CreateOrder("widget", 1, nil)

	w := do(t, r, http.MethodPut, "/xml/orders/"+order.ID+"/ship", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc ErrorDoc
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	require.Equal(t, "Cannot ship order with status 'pending'. Order must be completed first.", doc.Message)
}

func TestXMLJobAndResource_Receipts(t *testing.T) {
	_, r := newTestRouter(t, nil)

	jw := do(t, r, http.MethodPost, "/xml/jobs", map[string]any{"job_type": "export"})
	require.Equal(t, http.StatusAccepted, jw.Code)
	var job JobDoc
	require.NoError(t, xml.Unmarshal(jw.Body.Bytes(), &job))
	require.NotEmpty(t, job.JobID)
	require.Equal(t, "queued", job.Status)

	rw := do(t, r, http.MethodPost, "/xml/resources", map[string]any{"resource_type": "db"})
	require.Equal(t, http.StatusAccepted, rw.Code)
	var res ResourceDoc
	require.NoError(t, xml.Unmarshal(rw.Body.Bytes(), &res))
	require.NotEmpty(t, res.ResourceID)
	require.Equal(t, "provisioning", res.Status)
}

func TestXMLComments_CanaryEscapedNotStripped(t *testing.T) {
	s, r := newTestRouter(t, nil)

	canary := `<script>alert('xml-7')</script>`
	w := do(t, r, http.MethodPost, "/xml/comments", map[string]any{
		"post_id": "post-1",
		"content": canary,
		"author":  "mallory",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Stored verbatim; the XML encoder escapes on output only.
	require.Equal(t, canary, s.CommentsForPost("post-1")[0].Content)

	got := do(t, r, http.MethodGet, "/xml/posts/post-1/comments", nil)
	var doc CommentsDoc
	require.NoError(t, xml.Unmarshal(got.Body.Bytes(), &doc))
	require.Len(t, doc.Comments, 1)
	require.Equal(t, canary, doc.Comments[0].Content)
}

func TestXMLFeed_SharedWithRESTState(t *testing.T) {
	s, r := newTestRouter(t, nil)

	s.CreateProfile("alice", "bio text", "", nil)

	w := do(t, r, http.MethodGet, "/xml/feed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc FeedDoc
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Items, 1)
	require.Equal(t, "user_joined", doc.Items[0].Type)
	require.Equal(t, "alice", doc.Items[0].Username)
}
