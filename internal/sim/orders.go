package sim

import (
	"fmt"

	"github.com/google/uuid"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/metrics"
	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

// CreateOrder inserts a pending order and hands its lifecycle to the
// engine: pending → processing → completed|failed on background timers.
// The returned record is the caller's receipt; processing happens after
// the request ends.
func (s *Simulator) CreateOrder(productID string, quantity int, metadata map[string]any) domain.Order {
	now := domain.Timestamp()
	order := domain.Order{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		Metadata:  metadata,
		Status:    domain.OrderPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders.Put(order.ID, order)
	metrics.EntitiesCreated.WithLabelValues("order").Inc()

	s.startLifecycle(s.orderLifecycle(order.ID))
	return order
}

// orderLifecycle: pending →(2s)→ processing →(3s)→ {completed p=0.9 | failed}.
// Transitions append activity events at the boundaries the feed exposes.
func (s *Simulator) orderLifecycle(id string) Lifecycle {
	return Lifecycle{
		Kind: "order",
		ID:   id,
		Stages: []Stage{
			{
				Dwell: s.cfg.OrderProcessingDelay,
				Apply: func() bool {
					return s.applyOrderStatus(id, func(o *domain.Order) {
						o.Status = domain.OrderProcessing
					})
				},
			},
		},
		Branch: Branch{
			Dwell:       s.cfg.OrderCompletionDelay,
			SuccessRate: s.cfg.OrderSuccessRate,
			Success: func() bool {
				return s.applyOrderStatus(id, func(o *domain.Order) {
					o.Status = domain.OrderCompleted
					o.CompletedAt = domain.Timestamp()
				})
			},
			Failure: func() bool {
				return s.applyOrderStatus(id, func(o *domain.Order) {
					o.Status = domain.OrderFailed
					o.Error = "Processing failed - payment declined"
				})
			},
		},
	}
}

// applyOrderStatus commits one timer-driven transition and logs it to the
// activity feed. Returns false when the order was deleted before the
// timer fired (the transition is then silently skipped).
func (s *Simulator) applyOrderStatus(id string, mutate func(*domain.Order)) bool {
	order, found, _ := s.orders.Update(id, func(o *domain.Order) error {
		mutate(o)
		o.UpdatedAt = domain.Timestamp()
		return nil
	})
	if !found {
		return false
	}

	metrics.Transitions.WithLabelValues("order", string(order.Status)).Inc()
	switch order.Status {
	case domain.OrderProcessing:
		s.activity.Append(domain.OrderEvent(domain.EventOrderProcessing, id, order.Status))
	case domain.OrderCompleted, domain.OrderFailed:
		s.activity.Append(domain.OrderEvent(domain.EventOrderCompleted, id, order.Status))
	}
	return true
}

// GetOrder returns the order or NotFound.
func (s *Simulator) GetOrder(id string) (domain.Order, error) {
	order, ok := s.orders.Get(id)
	if !ok {
		return domain.Order{}, apperrors.ErrOrderNotFound(id)
	}
	return order, nil
}

// ShipOrder is a manual, synchronous transition: completed → shipped.
// It rides the same mutation path as the timer-driven transitions, so a
// ship racing the completion timer can never produce a lost update. Once
// shipped the order is immutable.
func (s *Simulator) ShipOrder(id string) (domain.Order, error) {
	order, found, err := s.orders.Update(id, func(o *domain.Order) error {
		if o.Status != domain.OrderCompleted {
			return apperrors.ErrInvalidTransition(fmt.Sprintf(
				"Cannot ship order with status '%s'. Order must be completed first.", o.Status))
		}
		now := domain.Timestamp()
		o.Status = domain.OrderShipped
		o.ShippedAt = now
		o.UpdatedAt = now
		return nil
	})
	if !found {
		return domain.Order{}, apperrors.ErrOrderNotFound(id)
	}
	if err != nil {
		return domain.Order{}, err
	}

	metrics.Transitions.WithLabelValues("order", string(domain.OrderShipped)).Inc()
	return order, nil
}

// CancelOrder deletes the order unless it has shipped. Any timer still
// pending for it will find the record gone and skip silently.
func (s *Simulator) CancelOrder(id string) error {
	found, err := s.orders.DeleteIf(id, func(o domain.Order) error {
		if o.Status == domain.OrderShipped {
			return apperrors.ErrInvalidTransition("Cannot cancel shipped order")
		}
		return nil
	})
	if !found {
		return apperrors.ErrOrderNotFound(id)
	}
	return err
}
