package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	transitionsTotal   metric.Int64Counter
	transitionDuration metric.Float64Histogram
	deletionsTotal     metric.Int64Counter
	loadsTotal         metric.Int64Counter
	reportsTotal       metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.transitionsTotal, err = meter.Int64Counter(
		"order_transitions_total",
		metric.WithDescription("Status transition requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_transitions_total counter: %w", err)
	}

	m.transitionDuration, err = meter.Float64Histogram(
		"order_transition_duration_seconds",
		metric.WithDescription("Duration of status transition requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_transition_duration histogram: %w", err)
	}

	m.deletionsTotal, err = meter.Int64Counter(
		"order_deletions_total",
		metric.WithDescription("Delete requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_deletions_total counter: %w", err)
	}

	m.loadsTotal, err = meter.Int64Counter(
		"order_loads_total",
		metric.WithDescription("Order collection loads from the repository"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_loads_total counter: %w", err)
	}

	m.reportsTotal, err = meter.Int64Counter(
		"reports_generated_total",
		metric.WithDescription("Generated report artifacts"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create reports_generated_total counter: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordTransition(ctx context.Context, outcome string, durationSeconds float64) {
	m.transitionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.transitionDuration.Record(ctx, durationSeconds)
}

func (m *Metrics) RecordDeletion(ctx context.Context, outcome string) {
	m.deletionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) RecordLoad(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.loadsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordReport(ctx context.Context, format string) {
	m.reportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
	))
}
