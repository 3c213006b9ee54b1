package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
	"driftlab.io/driftlab/internal/sim"
)

func TestCreateOrder_AcceptedPending(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"product_id": "widget-1",
		"quantity":   3,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.NotEmpty(t, body["order_id"])
	require.Equal(t, "pending", body["status"])
}

func TestCreateOrder_MissingFields(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{"quantity": 1})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorCode(t, w, apperrors.CodeInvalidRequest)
}

func TestGetOrder_NotFound(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(t, r, http.MethodGet, "/api/orders/nope", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assertErrorCode(t, w, apperrors.CodeOrderNotFound)
}

func TestOrder_CompletesAndShips(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"product_id": "widget-1",
		"quantity":   1,
	})
	id := decodeBody(t, w)["order_id"].(string)

	eventually(t, 2*time.Second, func() bool {
		got := doJSON(t, r, http.MethodGet, "/api/orders/"+id, nil)
		return decodeBody(t, got)["status"] == "completed"
	}, "order never completed")

	shipped := doJSON(t, r, http.MethodPut, "/api/orders/"+id+"/ship", nil)
	require.Equal(t, http.StatusOK, shipped.Code)
	require.Equal(t, "shipped", decodeBody(t, shipped)["status"])
	require.NotEmpty(t, decodeBody(t, shipped)["shipped_at"])
}

func TestShipOrder_BeforeCompletionConflicts(t *testing.T) {
	_, r := newTestServer(t, func(c *sim.Config) { c.OrderProcessingDelay = time.Hour })

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"product_id": "widget-1",
		"quantity":   1,
	})
	id := decodeBody(t, w)["order_id"].(string)

	shipped := doJSON(t, r, http.MethodPut, "/api/orders/"+id+"/ship", nil)
	require.Equal(t, http.StatusConflict, shipped.Code)
	assertErrorCode(t, shipped, apperrors.CodeInvalidStateTransition)
	require.Contains(t, decodeBody(t, shipped)["message"], "status 'pending'")
}

func TestCancelOrder_PendingSucceeds(t *testing.T) {
	_, r := newTestServer(t, func(c *sim.Config) { c.OrderProcessingDelay = time.Hour })

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"product_id": "widget-1",
		"quantity":   1,
	})
	id := decodeBody(t, w)["order_id"].(string)

	cancelled := doJSON(t, r, http.MethodDelete, "/api/orders/"+id, nil)
	require.Equal(t, http.StatusOK, cancelled.Code)
	require.Equal(t, "Order cancelled", decodeBody(t, cancelled)["message"])

	gone := doJSON(t, r, http.MethodGet, "/api/orders/"+id, nil)
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestCancelOrder_ShippedConflicts(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"product_id": "widget-1",
		"quantity":   1,
	})
	id := decodeBody(t, w)["order_id"].(string)

	eventually(t, 2*time.Second, func() bool {
		got := doJSON(t, r, http.MethodGet, "/api/orders/"+id, nil)
		return decodeBody(t, got)["status"] == "completed"
	}, "order never completed")
	doJSON(t, r, http.MethodPut, "/api/orders/"+id+"/ship", nil)

	cancelled := doJSON(t, r, http.MethodDelete, "/api/orders/"+id, nil)
	require.Equal(t, http.StatusConflict, cancelled.Code)
	require.Equal(t, "Cannot cancel shipped order", decodeBody(t, cancelled)["message"])
}
