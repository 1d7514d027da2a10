package memory

import (
	"context"
	"sync"

	"retailos/internal/app/domains/entity/etcart"
)

// CartStore in-process session store; carts are cloned in and out
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*etcart.Cart
}

// NewCartStore empty cart store
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*etcart.Cart)}
}

func cartKey(customerID, retailerID string) string {
	return retailerID + "\x00" + customerID
}

// Get returns nil, nil when absent
func (s *CartStore) Get(ctx context.Context, customerID, retailerID string) (*etcart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[cartKey(customerID, retailerID)]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

// Save stores a copy
func (s *CartStore) Save(ctx context.Context, cart *etcart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cartKey(cart.CustomerID, cart.RetailerID)] = cart.Clone()
	return nil
}

// Delete removes the cart if present
func (s *CartStore) Delete(ctx context.Context, customerID, retailerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartKey(customerID, retailerID))
	return nil
}
