package kafka

import (
	"context"
	"log/slog"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// NoopEventBus logs events without sending them to Kafka. Used when no brokers are configured.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishStatusChanged(ctx context.Context, order domain.Order, previous domain.OrderStatus) error {
	slog.DebugContext(ctx, "event::order_status_changed",
		"order_id", order.ID,
		"previous_status", previous,
		"status", order.Status,
	)
	return nil
}

func (n *NoopEventBus) PublishOrderDeleted(ctx context.Context, order domain.Order) error {
	slog.DebugContext(ctx, "event::order_deleted", "order_id", order.ID)
	return nil
}
