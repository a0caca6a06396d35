package queries

import (
	"context"

	"github.com/dejobratic/orderdesk/internal/orders/collection"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/ports"
)

// LoadOrdersQueryHandler refreshes the collection from the repository.
type LoadOrdersQueryHandler struct {
	orders *collection.Collection
	repo   ports.OrderRepository
}

// NewLoadOrdersQueryHandler constructs a LoadOrdersQueryHandler.
func NewLoadOrdersQueryHandler(orders *collection.Collection, repo ports.OrderRepository) *LoadOrdersQueryHandler {
	return &LoadOrdersQueryHandler{orders: orders, repo: repo}
}

// Handle fetches every order and replaces the collection with them. Any
// failure is reported as a FetchError and leaves the collection untouched.
func (h *LoadOrdersQueryHandler) Handle(ctx context.Context) ([]domain.Order, error) {
	fetched, err := h.repo.FetchAll(ctx)
	if err != nil {
		return nil, &domain.FetchError{Err: err}
	}

	if err := h.orders.Load(fetched); err != nil {
		return nil, &domain.FetchError{Err: err}
	}

	return h.orders.Displayed(), nil
}
