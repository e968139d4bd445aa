package messaging

import (
	"context"

	"github.com/vinylstore/backend/internal/entity"
)

// Publisher defines an interface for publishing domain events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event entity.Event) error
}

// Topics for domain events.
const (
	TopicOrders = "orders.events"
	TopicCarts  = "carts.events"
)
