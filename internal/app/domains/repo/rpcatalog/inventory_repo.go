package rpcatalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etorder"
)

// ErrVersionConflict an item changed between read and decrement
var ErrVersionConflict = errors.New("inventory changed since it was read")

// Decrement one compare-and-decrement step
type Decrement struct {
	CanonicalName   string
	Quantity        decimal.Decimal
	ExpectedVersion int64
}

// InventoryRepository inventory collaborator
type InventoryRepository interface {
	// GetSnapshot reads every catalog row of a retailer in one query
	GetSnapshot(ctx context.Context, retailerID string) (*etcatalog.Snapshot, error)

	// DecrementAtomic decrements each item only if its version still matches
	// and stock covers the quantity, then stores order. Either everything is
	// applied or nothing is; a failed compare returns ErrVersionConflict.
	DecrementAtomic(ctx context.Context, retailerID string, decs []Decrement, order *etorder.Order) error

	// SaveItems inserts or replaces catalog rows
	SaveItems(ctx context.Context, items []*etcatalog.Item) error
}
