package kafka

import (
	"time"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

const (
	EventStatusChanged = "order.status_changed"
	EventOrderDeleted  = "order.deleted"
)

// Event is the payload published for order lifecycle changes.
type Event struct {
	Type           string             `json:"type"`
	OrderID        string             `json:"order_id"`
	CustomerEmail  string             `json:"customer_email"`
	Status         domain.OrderStatus `json:"status,omitempty"`
	PreviousStatus domain.OrderStatus `json:"previous_status,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

func statusChangedEvent(order domain.Order, previous domain.OrderStatus, now time.Time) Event {
	return Event{
		Type:           EventStatusChanged,
		OrderID:        order.ID,
		CustomerEmail:  order.CustomerEmail,
		Status:         order.Status,
		PreviousStatus: previous,
		OccurredAt:     now.UTC(),
	}
}

func orderDeletedEvent(order domain.Order, now time.Time) Event {
	return Event{
		Type:          EventOrderDeleted,
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		Status:        order.Status,
		OccurredAt:    now.UTC(),
	}
}
