package etcatalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"retailos/internal/app/pkg/textnorm"
)

var (
	ErrInvalidRetailerID  = errors.New("retailer id cannot be empty")
	ErrInvalidName        = errors.New("canonical name cannot be empty")
	ErrInvalidUnit        = errors.New("unit cannot be empty")
	ErrNegativeStock      = errors.New("stock quantity cannot be negative")
	ErrNonPositivePrice   = errors.New("unit price must be positive")
	ErrNegativeMinStock   = errors.New("min stock level cannot be negative")
	ErrDuplicateCanonical = errors.New("duplicate canonical name in catalog")
)

// Item one retailer catalog row
type Item struct {
	RetailerID    string
	CanonicalName string
	Key           string // folded CanonicalName, unique per retailer
	Unit          string
	Category      string
	StockQty      decimal.Decimal
	UnitPrice     decimal.Decimal
	MinStockLevel decimal.Decimal
	Version       int64
	UpdatedAt     time.Time
}

// NewItem builds a validated catalog item
func NewItem(retailerID, name, unit, category string, stock, price, minStock decimal.Decimal) (*Item, error) {
	item := &Item{
		RetailerID:    retailerID,
		CanonicalName: name,
		Key:           textnorm.Key(name),
		Unit:          unit,
		Category:      category,
		StockQty:      stock,
		UnitPrice:     price,
		MinStockLevel: minStock,
		Version:       1,
		UpdatedAt:     time.Now(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the catalog row invariants
func (i *Item) Validate() error {
	switch {
	case i.RetailerID == "":
		return ErrInvalidRetailerID
	case i.Key == "":
		return ErrInvalidName
	case i.Unit == "":
		return ErrInvalidUnit
	case i.StockQty.IsNegative():
		return ErrNegativeStock
	case !i.UnitPrice.IsPositive():
		return ErrNonPositivePrice
	case i.MinStockLevel.IsNegative():
		return ErrNegativeMinStock
	}
	return nil
}

// Clone returns a copy safe to hand out of a store
func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// Snapshot point-in-time read of one retailer's catalog
type Snapshot struct {
	RetailerID string
	TakenAt    time.Time

	items []*Item
	byKey map[string]*Item
}

// NewSnapshot indexes items by folded canonical name
func NewSnapshot(retailerID string, items []*Item) (*Snapshot, error) {
	s := &Snapshot{
		RetailerID: retailerID,
		TakenAt:    time.Now(),
		items:      make([]*Item, 0, len(items)),
		byKey:      make(map[string]*Item, len(items)),
	}
	for _, item := range items {
		if item.Key == "" {
			item.Key = textnorm.Key(item.CanonicalName)
		}
		if _, dup := s.byKey[item.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCanonical, item.CanonicalName)
		}
		s.byKey[item.Key] = item
		s.items = append(s.items, item)
	}
	return s, nil
}

// Items catalog rows in load order
func (s *Snapshot) Items() []*Item {
	return s.items
}

// Len number of rows
func (s *Snapshot) Len() int {
	return len(s.items)
}

// Lookup finds an item by name, ignoring case and diacritics
func (s *Snapshot) Lookup(name string) (*Item, bool) {
	item, ok := s.byKey[textnorm.Key(name)]
	return item, ok
}

// InCategory items sharing category, excluding the one named exclude
func (s *Snapshot) InCategory(category, exclude string) []*Item {
	if category == "" {
		return nil
	}
	excludeKey := textnorm.Key(exclude)
	var out []*Item
	for _, item := range s.items {
		if item.Category == category && item.Key != excludeKey {
			out = append(out, item)
		}
	}
	return out
}
