package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writes flush per message so a synchronous publish never waits on a batch.
const flushTimeout = 5 * time.Millisecond

// Producer publishes lifecycle events synchronously, keyed by order id so
// events for one order stay on one partition.
type Producer struct {
	w   messageWriter
	now func() time.Time
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
			BatchSize:    1,
			BatchTimeout: flushTimeout,
		},
		now: time.Now,
	}
}

func (p *Producer) PublishStatusChanged(ctx context.Context, order domain.Order, previous domain.OrderStatus) error {
	return p.publish(ctx, statusChangedEvent(order, previous, p.now()))
}

func (p *Producer) PublishOrderDeleted(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, orderDeletedEvent(order, p.now()))
}

func (p *Producer) Close() error {
	return p.w.Close()
}

func (p *Producer) publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event.Type, err)
	}
	return nil
}
