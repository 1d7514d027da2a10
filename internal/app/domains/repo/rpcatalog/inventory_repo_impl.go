package rpcatalog

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retailos/common/entity"
	"retailos/internal/app/domains/entity/etcatalog"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/repo/rporder"
	"retailos/internal/app/pkg/textnorm"
)

// InventoryRepositoryImpl MySQL inventory
type InventoryRepositoryImpl struct {
	db *gorm.DB
}

// NewInventoryRepository creates the MySQL inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &InventoryRepositoryImpl{db: db}
}

// GetSnapshot reads all rows of the retailer in id order
func (r *InventoryRepositoryImpl) GetSnapshot(ctx context.Context, retailerID string) (*etcatalog.Snapshot, error) {
	var pos []entity.CatalogItem
	err := r.db.WithContext(ctx).
		Where("retailer_id = ?", retailerID).
		Order("id ASC").
		Find(&pos).Error
	if err != nil {
		return nil, fmt.Errorf("query catalog failed: %w", err)
	}

	items := make([]*etcatalog.Item, 0, len(pos))
	for i := range pos {
		items = append(items, toDomainModel(&pos[i]))
	}
	return etcatalog.NewSnapshot(retailerID, items)
}

// DecrementAtomic runs every conditional UPDATE and the order INSERT in one transaction
func (r *InventoryRepositoryImpl) DecrementAtomic(ctx context.Context, retailerID string, decs []Decrement, order *etorder.Order) error {
	po, err := rporder.ToGormModel(order)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, d := range decs {
			res := tx.Model(&entity.CatalogItem{}).
				Where("retailer_id = ? AND canonical_key = ? AND version = ? AND stock_qty >= ?",
					retailerID, textnorm.Key(d.CanonicalName), d.ExpectedVersion, d.Quantity).
				Updates(map[string]interface{}{
					"stock_qty":  gorm.Expr("stock_qty - ?", d.Quantity),
					"version":    gorm.Expr("version + 1"),
					"updated_at": now,
				})
			if res.Error != nil {
				return fmt.Errorf("decrement %s failed: %w", d.CanonicalName, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrVersionConflict, d.CanonicalName)
			}
		}

		if err := tx.Create(po).Error; err != nil {
			return fmt.Errorf("insert order failed: %w", err)
		}
		return nil
	})
}

// SaveItems upserts on (retailer_id, canonical_key). An update bumps the
// row version so an in-flight commit holding the old version fails its CAS.
func (r *InventoryRepositoryImpl) SaveItems(ctx context.Context, items []*etcatalog.Item) error {
	if len(items) == 0 {
		return nil
	}
	pos := make([]*entity.CatalogItem, 0, len(items))
	for _, item := range items {
		pos = append(pos, toGormModel(item))
	}
	updates := clause.AssignmentColumns([]string{"canonical_name", "unit", "category", "stock_qty", "unit_price", "min_stock_level", "updated_at"})
	updates = append(updates, clause.Assignment{Column: clause.Column{Name: "version"}, Value: gorm.Expr("version + 1")})
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "retailer_id"}, {Name: "canonical_key"}},
			DoUpdates: updates,
		}).
		Create(&pos).Error
}

func toGormModel(item *etcatalog.Item) *entity.CatalogItem {
	key := item.Key
	if key == "" {
		key = textnorm.Key(item.CanonicalName)
	}
	version := item.Version
	if version == 0 {
		version = 1
	}
	return &entity.CatalogItem{
		RetailerID:    item.RetailerID,
		CanonicalName: item.CanonicalName,
		CanonicalKey:  key,
		Unit:          item.Unit,
		Category:      item.Category,
		StockQty:      item.StockQty,
		UnitPrice:     item.UnitPrice,
		MinStockLevel: item.MinStockLevel,
		Version:       version,
		UpdatedAt:     time.Now(),
	}
}

func toDomainModel(po *entity.CatalogItem) *etcatalog.Item {
	return &etcatalog.Item{
		RetailerID:    po.RetailerID,
		CanonicalName: po.CanonicalName,
		Key:           po.CanonicalKey,
		Unit:          po.Unit,
		Category:      po.Category,
		StockQty:      po.StockQty,
		UnitPrice:     po.UnitPrice,
		MinStockLevel: po.MinStockLevel,
		Version:       po.Version,
		UpdatedAt:     po.UpdatedAt,
	}
}
