package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retailos/common/entity"
)

// RestockAlertDAO restock alert data access object
type RestockAlertDAO struct {
	db *gorm.DB
}

// NewRestockAlertDAO creates a RestockAlertDAO
func NewRestockAlertDAO(db *gorm.DB) *RestockAlertDAO {
	return &RestockAlertDAO{db: db}
}

// SaveAlerts inserts alerts; rows already recorded for the same
// (order_id, canonical_name) are skipped so redelivered jobs are harmless
func (dao *RestockAlertDAO) SaveAlerts(ctx context.Context, alerts []*entity.RestockAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	result := dao.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&alerts)
	if result.Error != nil {
		return fmt.Errorf("failed to save restock alerts: %w", result.Error)
	}
	return nil
}

// ListByRetailer newest alerts of a retailer first
func (dao *RestockAlertDAO) ListByRetailer(ctx context.Context, retailerID string, limit int) ([]*entity.RestockAlert, error) {
	var alerts []*entity.RestockAlert
	result := dao.db.WithContext(ctx).
		Where("retailer_id = ?", retailerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list restock alerts: %w", result.Error)
	}
	return alerts, nil
}
