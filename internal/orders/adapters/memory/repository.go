package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// Repository provides an in-memory store useful for local development and tests.
type Repository struct {
	mu     sync.RWMutex
	ids    []string
	orders map[string]domain.Order
}

// NewRepository constructs a repository holding the given orders.
func NewRepository(orders ...domain.Order) *Repository {
	r := &Repository{orders: make(map[string]domain.Order, len(orders))}
	for _, order := range orders {
		r.put(order)
	}
	return r
}

// NewDemoRepository returns a repository seeded with DemoOrders.
func NewDemoRepository() *Repository {
	return NewRepository(DemoOrders()...)
}

// DemoOrders builds a handful of sample orders with fresh ids.
func DemoOrders() []domain.Order {
	seed := []struct {
		name   string
		email  string
		total  string
		status domain.OrderStatus
	}{
		{"Alice Perera", "alice@example.com", "4500.00", domain.StatusPending},
		{"Bob Silva", "bob@example.com", "1299.50", domain.StatusShipped},
		{"Chamari Fernando", "chamari@example.com", "780.25", domain.StatusPending},
		{"Dinesh Kumar", "dinesh@example.com", "15000.00", domain.StatusDelivered},
	}

	orders := make([]domain.Order, 0, len(seed))
	for _, s := range seed {
		orders = append(orders, domain.Order{
			ID:            uuid.NewString(),
			CustomerName:  s.name,
			CustomerEmail: s.email,
			TotalPrice:    decimal.RequireFromString(s.total),
			Status:        s.status,
		})
	}
	return orders
}

// FetchAll returns every order in insertion order.
func (r *Repository) FetchAll(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.orders[id])
	}
	return result, nil
}

// UpdateStatus sets the status for an order.
func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("update status of %s: %w", id, domain.ErrNotFound)
	}
	r.orders[id] = order.WithStatus(status)
	return nil
}

// Delete removes an order.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, domain.ErrNotFound)
	}
	delete(r.orders, id)
	r.ids = slices.DeleteFunc(r.ids, func(v string) bool { return v == id })
	return nil
}

func (r *Repository) put(order domain.Order) {
	if _, exists := r.orders[order.ID]; !exists {
		r.ids = append(r.ids, order.ID)
	}
	r.orders[order.ID] = order
}
