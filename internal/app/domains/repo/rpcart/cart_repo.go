package rpcart

import (
	"context"

	"retailos/internal/app/domains/entity/etcart"
)

// CartRepository session store for conversation carts, keyed by (customer, retailer)
type CartRepository interface {
	// Get returns nil, nil when no cart exists
	Get(ctx context.Context, customerID, retailerID string) (*etcart.Cart, error)

	// Save stores the cart, replacing any previous one
	Save(ctx context.Context, cart *etcart.Cart) error

	// Delete is a no-op when nothing is stored
	Delete(ctx context.Context, customerID, retailerID string) error
}
