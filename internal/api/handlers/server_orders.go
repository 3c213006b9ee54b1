package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateOrderRequest is the body for POST /api/orders.
type CreateOrderRequest struct {
	ProductID string         `json:"product_id" binding:"required"`
	Quantity  int            `json:"quantity" binding:"required,min=1"`
	Metadata  map[string]any `json:"metadata"`
}

// CreateOrder handles POST /api/orders. The order is accepted in pending
// state; processing happens on background timers after the response.
func (s *Server) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, err.Error()))
		return
	}

	order := s.sim.CreateOrder(req.ProductID, req.Quantity, req.Metadata)
	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.sim.GetOrder(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ShipOrder handles PUT /api/orders/:id/ship. 409 unless completed.
func (s *Server) ShipOrder(c *gin.Context) {
	order, err := s.sim.ShipOrder(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder handles DELETE /api/orders/:id. 409 once shipped.
func (s *Server) CancelOrder(c *gin.Context) {
	if err := s.sim.CancelOrder(c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
