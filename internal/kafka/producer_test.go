package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

type recordingWriter struct {
	messages []kafkago.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestProducer(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	order := domain.Order{
		ID:            "ord-1",
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		TotalPrice:    decimal.NewFromInt(10),
		Status:        domain.StatusShipped,
	}

	t.Run("publishes status change keyed by order id", func(t *testing.T) {
		w := &recordingWriter{}
		p := &Producer{w: w, now: func() time.Time { return fixed }}

		if err := p.PublishStatusChanged(context.Background(), order, domain.StatusPending); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		if len(w.messages) != 1 {
			t.Fatalf("expected 1 message, got %d", len(w.messages))
		}
		msg := w.messages[0]
		if string(msg.Key) != "ord-1" {
			t.Errorf("expected key ord-1, got %s", msg.Key)
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != EventStatusChanged {
			t.Errorf("unexpected headers %+v", msg.Headers)
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		want := Event{
			Type:           EventStatusChanged,
			OrderID:        "ord-1",
			CustomerEmail:  "alice@example.com",
			Status:         domain.StatusShipped,
			PreviousStatus: domain.StatusPending,
			OccurredAt:     fixed,
		}
		if !event.OccurredAt.Equal(want.OccurredAt) {
			t.Errorf("expected occurred_at %v, got %v", want.OccurredAt, event.OccurredAt)
		}
		event.OccurredAt = want.OccurredAt
		if event != want {
			t.Errorf("expected %+v, got %+v", want, event)
		}
	})

	t.Run("wraps writer errors", func(t *testing.T) {
		writeErr := errors.New("leader not available")
		p := &Producer{w: &recordingWriter{err: writeErr}, now: time.Now}

		err := p.PublishOrderDeleted(context.Background(), order)

		if !errors.Is(err, writeErr) {
			t.Errorf("expected wrapped writer error, got: %v", err)
		}
	})
}

func TestNewProducerFlushesEachMessage(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "orders.lifecycle")
	defer p.Close()

	w, ok := p.w.(*kafkago.Writer)
	if !ok {
		t.Fatalf("expected *kafka.Writer, got %T", p.w)
	}
	if w.BatchSize != 1 {
		t.Errorf("expected batch size 1, got %d", w.BatchSize)
	}
	if w.BatchTimeout <= 0 || w.BatchTimeout > 10*time.Millisecond {
		t.Errorf("expected batch timeout of a few milliseconds, got %v", w.BatchTimeout)
	}
	if w.Topic != "orders.lifecycle" {
		t.Errorf("expected topic orders.lifecycle, got %q", w.Topic)
	}
}
