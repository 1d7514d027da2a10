package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem one retailer inventory row; version drives compare-and-decrement
type CatalogItem struct {
	ID            int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RetailerID    string          `gorm:"column:retailer_id;type:varchar(64);not null;uniqueIndex:uk_retailer_key"`
	CanonicalName string          `gorm:"column:canonical_name;type:varchar(255);not null"`
	CanonicalKey  string          `gorm:"column:canonical_key;type:varchar(255);not null;uniqueIndex:uk_retailer_key"`
	Unit          string          `gorm:"column:unit;type:varchar(32);not null"`
	Category      string          `gorm:"column:category;type:varchar(64);not null;default:''"`
	StockQty      decimal.Decimal `gorm:"column:stock_qty;type:decimal(14,3);not null"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:decimal(14,4);not null"`
	MinStockLevel decimal.Decimal `gorm:"column:min_stock_level;type:decimal(14,3);not null;default:0"`
	Version       int64           `gorm:"column:version;not null;default:1"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;not null"`
}

// TableName table name
func (CatalogItem) TableName() string {
	return "catalog_items"
}
