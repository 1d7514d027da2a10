package rporder

import (
	"context"

	"retailos/internal/app/domains/entity/etorder"
)

// OrderRepository order reads. Orders are written together with the stock
// decrement, see rpcatalog.InventoryRepository.DecrementAtomic.
type OrderRepository interface {
	// GetByID returns errorx.ErrOrderNotFound when no order has this id
	GetByID(ctx context.Context, orderID string) (*etorder.Order, error)

	// List orders of one customer at one retailer, newest first
	List(ctx context.Context, retailerID, customerID string, page, limit int) ([]*etorder.Order, int64, error)
}
