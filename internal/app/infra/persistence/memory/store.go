// Package memory in-process inventory, order and cart stores for local runs
// and tests
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/repo/rpcatalog"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/textnorm"
)

// Store catalog and orders behind one mutex, so a decrement and its order
// insert are applied together
type Store struct {
	mu      sync.RWMutex
	catalog map[string][]*etcatalog.Item // retailer id -> rows in insert order
	orders  map[string]*etorder.Order
}

// NewStore empty store
func NewStore() *Store {
	return &Store{
		catalog: make(map[string][]*etcatalog.Item),
		orders:  make(map[string]*etorder.Order),
	}
}

// GetSnapshot copies the retailer's rows
func (s *Store) GetSnapshot(ctx context.Context, retailerID string) (*etcatalog.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.catalog[retailerID]
	items := make([]*etcatalog.Item, 0, len(rows))
	for _, item := range rows {
		items = append(items, item.Clone())
	}
	return etcatalog.NewSnapshot(retailerID, items)
}

// DecrementAtomic checks every step first and only then applies them
func (s *Store) DecrementAtomic(ctx context.Context, retailerID string, decs []rpcatalog.Decrement, order *etorder.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]*etcatalog.Item, len(decs))
	for i, d := range decs {
		item := s.find(retailerID, d.CanonicalName)
		if item == nil || item.Version != d.ExpectedVersion || item.StockQty.LessThan(d.Quantity) {
			return fmt.Errorf("%w: %s", rpcatalog.ErrVersionConflict, d.CanonicalName)
		}
		targets[i] = item
	}

	now := time.Now()
	for i, d := range decs {
		targets[i].StockQty = targets[i].StockQty.Sub(d.Quantity)
		targets[i].Version++
		targets[i].UpdatedAt = now
	}
	s.orders[order.ID] = order
	return nil
}

// SaveItems upserts by folded canonical name; an upsert bumps the version
func (s *Store) SaveItems(ctx context.Context, items []*etcatalog.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %q: %w", item.CanonicalName, err)
		}
		cp := item.Clone()
		cp.Key = textnorm.Key(cp.CanonicalName)
		if existing := s.find(cp.RetailerID, cp.CanonicalName); existing != nil {
			cp.Version = existing.Version + 1
			*existing = *cp
			continue
		}
		if cp.Version == 0 {
			cp.Version = 1
		}
		s.catalog[cp.RetailerID] = append(s.catalog[cp.RetailerID], cp)
	}
	return nil
}

func (s *Store) find(retailerID, name string) *etcatalog.Item {
	key := textnorm.Key(name)
	for _, item := range s.catalog[retailerID] {
		if item.Key == key {
			return item
		}
	}
	return nil
}

// GetByID one order
func (s *Store) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, errorx.ErrOrderNotFound
	}
	return order, nil
}

// List newest first
func (s *Store) List(ctx context.Context, retailerID, customerID string, page, limit int) ([]*etorder.Order, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*etorder.Order
	for _, o := range s.orders {
		if o.RetailerID == retailerID && (customerID == "" || o.CustomerID == customerID) {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].OrderNo > matched[j].OrderNo
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) || start < 0 {
		return []*etorder.Order{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
