package ports

import (
	"context"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// EventBus defines the contract for publishing order lifecycle events.
type EventBus interface {
	PublishStatusChanged(ctx context.Context, order domain.Order, previous domain.OrderStatus) error
	PublishOrderDeleted(ctx context.Context, order domain.Order) error
}
