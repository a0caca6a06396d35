package commands

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/orderdesk/internal/orders/metrics"
	"github.com/dejobratic/orderdesk/internal/telemetry"
)

type ObservableDeleteHandler struct {
	handler DeleteHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableDeleteHandler(handler DeleteHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableDeleteHandler {
	return &ObservableDeleteHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableDeleteHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (DeleteResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "DeleteOrderCommand.Handle")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("order.id", cmd.OrderID))

	o.logger.InfoContext(ctx, "requesting order deletion", "order_id", cmd.OrderID)

	result, err := o.handler.Handle(ctx, cmd)
	if err != nil {
		o.metrics.RecordDeletion(ctx, string(OutcomeFailed))
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "order deletion failed",
			"error", err,
			"order_id", cmd.OrderID,
		)
		return result, err
	}

	o.metrics.RecordDeletion(ctx, string(result.Outcome))
	telemetry.AddSpanAttributes(span, attribute.String("delete.outcome", string(result.Outcome)))
	o.logger.InfoContext(ctx, "order deletion finished",
		"order_id", cmd.OrderID,
		"outcome", result.Outcome,
	)

	telemetry.SetSpanSuccess(span)
	return result, nil
}
