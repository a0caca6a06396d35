package queries_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dejobratic/orderdesk/internal/orders/app/queries"
	"github.com/dejobratic/orderdesk/internal/orders/collection"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/view"
	"github.com/dejobratic/orderdesk/internal/report"
)

type mockRepository struct {
	fetchAllFn func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockRepository) FetchAll(ctx context.Context) ([]domain.Order, error) {
	if m.fetchAllFn != nil {
		return m.fetchAllFn(ctx)
	}
	return nil, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func sampleOrders() []domain.Order {
	return []domain.Order{
		{ID: "1", CustomerName: "Alice", CustomerEmail: "alice@example.com", TotalPrice: decimal.RequireFromString("10.5"), Status: domain.StatusPending},
		{ID: "2", CustomerName: "Bob", CustomerEmail: "bob@example.com", TotalPrice: decimal.NewFromInt(20), Status: domain.StatusShipped},
		{ID: "3", CustomerName: "Alice B", CustomerEmail: "aliceb@example.com", TotalPrice: decimal.NewFromInt(5), Status: domain.StatusPending},
	}
}

func TestLoadOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("loads fetched orders into the view", func(t *testing.T) {
		orders := collection.New()
		repo := &mockRepository{fetchAllFn: func(ctx context.Context) ([]domain.Order, error) {
			return sampleOrders(), nil
		}}
		handler := queries.NewLoadOrdersQueryHandler(orders, repo)

		shown, err := handler.Handle(ctx)

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(shown) != 3 {
			t.Errorf("expected 3 orders, got %d", len(shown))
		}
	})

	t.Run("fetch failure keeps previous state", func(t *testing.T) {
		orders := collection.New()
		if err := orders.Load(sampleOrders()); err != nil {
			t.Fatalf("load: %v", err)
		}
		orders.Search("bob")
		fetchErr := errors.New("network down")
		repo := &mockRepository{fetchAllFn: func(ctx context.Context) ([]domain.Order, error) {
			return nil, fetchErr
		}}
		handler := queries.NewLoadOrdersQueryHandler(orders, repo)

		_, err := handler.Handle(ctx)

		var fe *domain.FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got: %v", err)
		}
		if !errors.Is(err, fetchErr) {
			t.Errorf("expected error to wrap fetch error, got: %v", err)
		}
		if len(orders.All()) != 3 || orders.Query() != "bob" {
			t.Errorf("expected previous state to be retained")
		}
	})

	t.Run("invalid payload is reported as FetchError", func(t *testing.T) {
		orders := collection.New()
		repo := &mockRepository{fetchAllFn: func(ctx context.Context) ([]domain.Order, error) {
			return append(sampleOrders(), sampleOrders()[0]), nil
		}}
		handler := queries.NewLoadOrdersQueryHandler(orders, repo)

		_, err := handler.Handle(ctx)

		if !errors.Is(err, domain.ErrFetch) {
			t.Errorf("expected ErrFetch, got: %v", err)
		}
		if len(orders.All()) != 0 {
			t.Errorf("expected empty collection, got %d orders", len(orders.All()))
		}
	})
}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()
	csvGen, err := report.New(report.FormatCSV)
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}
	generators := map[report.Format]report.Generator{report.FormatCSV: csvGen}

	t.Run("exports exactly the displayed view", func(t *testing.T) {
		orders := collection.New()
		if err := orders.Load(sampleOrders()); err != nil {
			t.Fatalf("load: %v", err)
		}
		orders.Search("alice")
		orders.Sort(view.SortKey{Column: view.ColumnTotalPrice, Direction: view.Ascending})
		handler := queries.NewGenerateReportQueryHandler(orders, generators)

		artifact, err := handler.Handle(ctx, queries.GenerateReportQuery{Format: report.FormatCSV})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		want := "ID,Name,Email,Total Price,Status\n" +
			"3,Alice B,aliceb@example.com,5.00,PENDING\n" +
			"1,Alice,alice@example.com,10.50,PENDING\n"
		if string(artifact.Body) != want {
			t.Errorf("unexpected report body:\n%s", artifact.Body)
		}
	})

	t.Run("empty view yields header only", func(t *testing.T) {
		handler := queries.NewGenerateReportQueryHandler(collection.New(), generators)

		artifact, err := handler.Handle(ctx, queries.GenerateReportQuery{Format: report.FormatCSV})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if lines := strings.Count(string(artifact.Body), "\n"); lines != 1 {
			t.Errorf("expected 1 line, got %d", lines)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		handler := queries.NewGenerateReportQueryHandler(collection.New(), generators)

		_, err := handler.Handle(ctx, queries.GenerateReportQuery{Format: report.FormatPDF})

		if !errors.Is(err, report.ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got: %v", err)
		}
	})
}
