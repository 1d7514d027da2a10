package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"retailos/internal/app/domains/entity/etcart"
)

// CartStore carts as JSON strings with a sliding TTL
type CartStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewCartStore ttl zero keeps carts until deleted
func NewCartStore(rdb redis.Cmdable, ttl time.Duration) *CartStore {
	return &CartStore{rdb: rdb, ttl: ttl}
}

// CartKey redis key of one conversation cart
func CartKey(customerID, retailerID string) string {
	return fmt.Sprintf("cart:%s:%s", retailerID, customerID)
}

// Get returns nil, nil when the key is missing
func (s *CartStore) Get(ctx context.Context, customerID, retailerID string) (*etcart.Cart, error) {
	raw, err := s.rdb.Get(ctx, CartKey(customerID, retailerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart failed: %w", err)
	}

	var cart etcart.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, fmt.Errorf("decode cart failed: %w", err)
	}
	return &cart, nil
}

// Save overwrites the cart and refreshes its TTL
func (s *CartStore) Save(ctx context.Context, cart *etcart.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart failed: %w", err)
	}
	if err := s.rdb.Set(ctx, CartKey(cart.CustomerID, cart.RetailerID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart failed: %w", err)
	}
	return nil
}

// Delete removes the key
func (s *CartStore) Delete(ctx context.Context, customerID, retailerID string) error {
	if err := s.rdb.Del(ctx, CartKey(customerID, retailerID)).Err(); err != nil {
		return fmt.Errorf("delete cart failed: %w", err)
	}
	return nil
}
