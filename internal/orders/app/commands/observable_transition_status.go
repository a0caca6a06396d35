package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/orderdesk/internal/orders/metrics"
	"github.com/dejobratic/orderdesk/internal/telemetry"
)

type ObservableTransitionHandler struct {
	handler TransitionHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableTransitionHandler(handler TransitionHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableTransitionHandler {
	return &ObservableTransitionHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableTransitionHandler) Handle(ctx context.Context, cmd TransitionStatusCommand) (TransitionResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "TransitionStatusCommand.Handle")
	defer span.End()

	start := time.Now()
	outcome := OutcomeFailed
	defer func() {
		o.metrics.RecordTransition(ctx, string(outcome), time.Since(start).Seconds())
	}()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", cmd.OrderID),
		attribute.String("order.target_status", string(cmd.Target)),
	)

	o.logger.InfoContext(ctx, "requesting status transition",
		"order_id", cmd.OrderID,
		"status", cmd.Target,
	)

	result, err := o.handler.Handle(ctx, cmd)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "status transition failed",
			"error", err,
			"order_id", cmd.OrderID,
			"status", cmd.Target,
		)
		return result, err
	}

	outcome = result.Outcome
	if outcome == OutcomeDeclined {
		telemetry.AddSpanEvent(span, "confirmation.declined")
	}
	telemetry.AddSpanAttributes(span,
		attribute.String("order.previous_status", string(result.Previous)),
		attribute.String("transition.outcome", string(result.Outcome)),
	)

	o.logger.InfoContext(ctx, "status transition finished",
		"order_id", result.Order.ID,
		"previous_status", result.Previous,
		"status", result.Order.Status,
		"outcome", result.Outcome,
	)

	telemetry.SetSpanSuccess(span)
	return result, nil
}
