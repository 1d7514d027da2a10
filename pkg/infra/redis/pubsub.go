package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"retailos/common/model"
)

// PubSub publishes worker notifications over redis channels
type PubSub struct {
	client redis.Cmdable
}

// NewPubSub wraps a connected client
func NewPubSub(client redis.Cmdable) *PubSub {
	return &PubSub{client: client}
}

// PublishLowStock publishes on the retailer's low stock channel
func (p *PubSub) PublishLowStock(ctx context.Context, notification *model.LowStockNotification) error {
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	channel := model.LowStockChannel(notification.RetailerID)
	if err := p.client.Publish(ctx, channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}
