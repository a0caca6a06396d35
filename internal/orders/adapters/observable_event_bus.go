package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/orderdesk/internal/kafka"
	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/ports"
	"github.com/dejobratic/orderdesk/internal/telemetry"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *kafka.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *kafka.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishStatusChanged(ctx context.Context, order domain.Order, previous domain.OrderStatus) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishStatusChanged")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("event.type", kafka.EventStatusChanged),
		attribute.String("order.previous_status", string(previous)),
		attribute.String("order.status", string(order.Status)),
	)

	start := time.Now()
	err := e.bus.PublishStatusChanged(ctx, order, previous)
	e.metrics.RecordPublish(ctx, kafka.EventStatusChanged, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (e *ObservableEventBus) PublishOrderDeleted(ctx context.Context, order domain.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderDeleted")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("event.type", kafka.EventOrderDeleted),
	)

	start := time.Now()
	err := e.bus.PublishOrderDeleted(ctx, order)
	e.metrics.RecordPublish(ctx, kafka.EventOrderDeleted, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
