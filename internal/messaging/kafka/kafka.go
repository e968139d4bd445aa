package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/messaging"
)

// Broker publishes domain events through a single shared writer; the topic
// travels on each message.
type Broker struct {
	writer *kafkaGo.Writer
}

// NewBroker creates a Kafka publisher for the given broker addresses.
func NewBroker(brokers []string) *Broker {
	return &Broker{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Balancer: &kafkaGo.LeastBytes{},
		},
	}
}

var _ messaging.Publisher = (*Broker)(nil)

func (b *Broker) PublishEvent(ctx context.Context, topic string, key string, event entity.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.EventType(), err)
	}

	return b.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkaGo.Header{
			{Key: "event_type", Value: []byte(event.EventType())},
		},
	})
}

func (b *Broker) Close() error {
	return b.writer.Close()
}
