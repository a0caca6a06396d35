package commands_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

type mockRepository struct {
	updateStatusFn func(ctx context.Context, id string, status domain.OrderStatus) error
	deleteFn       func(ctx context.Context, id string) error
	updateCalls    int
	deleteCalls    int
}

func (m *mockRepository) FetchAll(ctx context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	m.updateCalls++
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockPrompt struct {
	answer   bool
	err      error
	messages []string
}

func (m *mockPrompt) Confirm(_ context.Context, message string) (bool, error) {
	m.messages = append(m.messages, message)
	return m.answer, m.err
}

type mockEventBus struct {
	publishErr    error
	statusChanged []domain.Order
	deleted       []domain.Order
}

func (m *mockEventBus) PublishStatusChanged(_ context.Context, order domain.Order, _ domain.OrderStatus) error {
	m.statusChanged = append(m.statusChanged, order)
	return m.publishErr
}

func (m *mockEventBus) PublishOrderDeleted(_ context.Context, order domain.Order) error {
	m.deleted = append(m.deleted, order)
	return m.publishErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleOrders() []domain.Order {
	return []domain.Order{
		{ID: "1", CustomerName: "Alice", CustomerEmail: "alice@example.com", TotalPrice: decimal.RequireFromString("10.5"), Status: domain.StatusPending},
		{ID: "2", CustomerName: "Bob", CustomerEmail: "bob@example.com", TotalPrice: decimal.NewFromInt(20), Status: domain.StatusShipped},
		{ID: "3", CustomerName: "Alice B", CustomerEmail: "aliceb@example.com", TotalPrice: decimal.NewFromInt(5), Status: domain.StatusPending},
	}
}
