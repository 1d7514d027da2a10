package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order committed order; lines are stored as a JSON array
type Order struct {
	ID         string          `gorm:"column:id;primaryKey;type:varchar(64)"`
	OrderNo    int64           `gorm:"column:order_no;not null;uniqueIndex:uk_order_no"`
	RetailerID string          `gorm:"column:retailer_id;type:varchar(64);not null;index:idx_retailer_customer"`
	CustomerID string          `gorm:"column:customer_id;type:varchar(64);not null;index:idx_retailer_customer"`
	Lines      datatypes.JSON  `gorm:"column:lines;type:json;not null"`
	Total      decimal.Decimal `gorm:"column:total;type:decimal(14,2);not null"`
	ItemsCount int             `gorm:"column:items_count;not null"`
	Notes      string          `gorm:"column:notes;type:varchar(512);not null;default:''"`
	CreatedAt  time.Time       `gorm:"column:created_at;not null;index:idx_created_at"`
}

// TableName table name
func (Order) TableName() string {
	return "orders"
}
