package database

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordQuery(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordQuery(ctx, "fetch_orders", 0.1, true)
	metrics.RecordQuery(ctx, "fetch_orders", 0.2, true)
	metrics.RecordQuery(ctx, "delete_order", 0.05, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	counts := map[string]uint64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "db_query_duration_seconds" {
				continue
			}
			histogram, ok := m.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatal("Expected Histogram[float64] data type")
			}
			for _, dp := range histogram.DataPoints {
				op, _ := dp.Attributes.Value(attribute.Key("operation"))
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				counts[op.AsString()+"/"+status.AsString()] += dp.Count
			}
		}
	}

	if counts["fetch_orders/success"] != 2 {
		t.Errorf("expected 2 successful fetches, got %v", counts)
	}
	if counts["delete_order/error"] != 1 {
		t.Errorf("expected 1 failed delete, got %v", counts)
	}
}
