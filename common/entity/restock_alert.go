package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockAlert written by the worker when a commit leaves an item under its min level
type RestockAlert struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RetailerID    string          `gorm:"column:retailer_id;type:varchar(64);not null;index:idx_retailer_created"`
	OrderID       string          `gorm:"column:order_id;type:varchar(64);not null;uniqueIndex:uk_order_item"`
	CanonicalName string          `gorm:"column:canonical_name;type:varchar(255);not null;uniqueIndex:uk_order_item"`
	Unit          string          `gorm:"column:unit;type:varchar(32);not null"`
	RemainingQty  decimal.Decimal `gorm:"column:remaining_qty;type:decimal(14,3);not null"`
	MinStockLevel decimal.Decimal `gorm:"column:min_stock_level;type:decimal(14,3);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;not null;index:idx_retailer_created"`
}

// TableName table name
func (RestockAlert) TableName() string {
	return "restock_alerts"
}
