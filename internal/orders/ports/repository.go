package ports

import (
	"context"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// OrderRepository is the backend of record for orders. The engine only cares
// whether each call succeeded.
type OrderRepository interface {
	FetchAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	Delete(ctx context.Context, id string) error
}
