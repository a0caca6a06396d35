package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/orderdesk/internal/orders/app/commands"
	"github.com/dejobratic/orderdesk/internal/orders/app/queries"
	"github.com/dejobratic/orderdesk/internal/orders/collection"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/metrics"
	"github.com/dejobratic/orderdesk/internal/orders/ports"
	"github.com/dejobratic/orderdesk/internal/orders/view"
	"github.com/dejobratic/orderdesk/internal/report"
	"github.com/dejobratic/orderdesk/internal/telemetry"
)

// Service is the order management engine used by the console. It owns one
// order collection and is not safe for concurrent use.
type Service struct {
	orders            *collection.Collection
	loadHandler       *queries.LoadOrdersQueryHandler
	reportHandler     *queries.GenerateReportQueryHandler
	transitionHandler commands.TransitionHandler
	deleteHandler     commands.DeleteHandler
	logger            *slog.Logger
	metrics           *metrics.Metrics
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	prompt ports.ConfirmationPrompt,
	events ports.EventBus,
	generators map[report.Format]report.Generator,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	orders := collection.New()

	transition := commands.NewTransitionStatusCommandHandler(orders, repo, prompt, events, logger)
	deletion := commands.NewDeleteOrderCommandHandler(orders, repo, prompt, events, logger)

	return &Service{
		orders:            orders,
		loadHandler:       queries.NewLoadOrdersQueryHandler(orders, repo),
		reportHandler:     queries.NewGenerateReportQueryHandler(orders, generators),
		transitionHandler: commands.NewObservableTransitionHandler(transition, logger, metrics),
		deleteHandler:     commands.NewObservableDeleteHandler(deletion, logger, metrics),
		logger:            logger,
		metrics:           metrics,
	}
}

// View is a snapshot of what the console currently shows.
type View struct {
	Orders []domain.Order `json:"orders"`
	Query  string         `json:"query"`
	Sort   *view.SortKey  `json:"sort,omitempty"`
	Count  int            `json:"count"`
	Total  int            `json:"total"`
}

// Refresh reloads every order from the repository.
func (s *Service) Refresh(ctx context.Context) (View, error) {
	ctx, span := telemetry.StartSpan(ctx, "Service.Refresh")
	defer span.End()

	_, err := s.loadHandler.Handle(ctx)
	s.metrics.RecordLoad(ctx, err == nil)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		s.logger.ErrorContext(ctx, "failed to load orders", "error", err)
		return s.View(), err
	}

	current := s.View()
	telemetry.AddSpanAttributes(span, attribute.Int("orders.count", current.Total))
	telemetry.SetSpanSuccess(span)
	s.logger.InfoContext(ctx, "orders loaded", "count", current.Total)
	return current, nil
}

// View returns the current displayed rows with their search and sort state.
func (s *Service) View() View {
	shown := s.orders.Displayed()
	v := View{
		Orders: shown,
		Query:  s.orders.Query(),
		Count:  len(shown),
		Total:  len(s.orders.All()),
	}
	if key, ok := s.orders.SortKey(); ok {
		v.Sort = &key
	}
	return v
}

// Search filters the displayed rows by customer name.
func (s *Service) Search(query string) View {
	s.orders.Search(query)
	return s.View()
}

// Sort orders the displayed rows by column and direction.
func (s *Service) Sort(column, direction string) (View, error) {
	key, err := view.ParseSortKey(column, direction)
	if err != nil {
		return s.View(), err
	}
	s.orders.Sort(key)
	return s.View(), nil
}

// Find returns the authoritative copy of an order.
func (s *Service) Find(id string) (domain.Order, bool) {
	return s.orders.Find(id)
}

// TransitionStatus requests a confirmed, persisted status change.
func (s *Service) TransitionStatus(ctx context.Context, id string, status domain.OrderStatus) (commands.TransitionResult, error) {
	return s.transitionHandler.Handle(ctx, commands.TransitionStatusCommand{OrderID: id, Target: status})
}

// Ship is TransitionStatus to SHIPPED.
func (s *Service) Ship(ctx context.Context, id string) (commands.TransitionResult, error) {
	return s.TransitionStatus(ctx, id, domain.StatusShipped)
}

// DeleteOrder requests a confirmed, persisted delete.
func (s *Service) DeleteOrder(ctx context.Context, id string) (commands.DeleteResult, error) {
	return s.deleteHandler.Handle(ctx, commands.DeleteOrderCommand{OrderID: id})
}

// GenerateReport exports the displayed rows.
func (s *Service) GenerateReport(ctx context.Context, format report.Format) (report.Artifact, error) {
	ctx, span := telemetry.StartSpan(ctx, "Service.GenerateReport")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("report.format", string(format)))

	artifact, err := s.reportHandler.Handle(ctx, queries.GenerateReportQuery{Format: format})
	if err != nil {
		telemetry.RecordSpanError(span, err)
		s.logger.ErrorContext(ctx, "failed to generate report", "error", err, "format", format)
		return report.Artifact{}, err
	}

	s.metrics.RecordReport(ctx, string(format))
	telemetry.AddSpanAttributes(span, attribute.Int("report.bytes", len(artifact.Body)))
	telemetry.SetSpanSuccess(span)
	return artifact, nil
}
