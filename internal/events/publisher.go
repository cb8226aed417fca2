package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes roster events to a single topic, creating the writer
// lazily on first publish.
type KafkaPublisher struct {
	brokers []string
	topic   string

	mu     sync.Mutex
	writer *kafka.Writer
}

// NewKafkaPublisher creates a KafkaPublisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{brokers: brokers, topic: topic}
}

// Publish serializes the event and writes it keyed by activity name, so all
// events for one activity land on the same partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, event RosterChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Activity),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("roster." + event.Action)},
		},
	}
	return p.writerHandle().WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) writerHandle() *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(p.brokers...),
			Topic:        p.topic,
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		}
	}
	return p.writer
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}

// NoopPublisher discards events. Used when no brokers are configured.
type NoopPublisher struct{}

// Publish implements the publisher contract and does nothing.
func (NoopPublisher) Publish(context.Context, RosterChanged) error { return nil }
