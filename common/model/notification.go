package model

import "fmt"

// LowStockNotification published on the retailer's low stock channel
type LowStockNotification struct {
	RetailerID    string `json:"retailer_id"`
	OrderID       string `json:"order_id"`
	CanonicalName string `json:"canonical_name"`
	Unit          string `json:"unit"`
	RemainingQty  string `json:"remaining_qty"`
	MinStockLevel string `json:"min_stock_level"`
	Timestamp     int64  `json:"timestamp"`
}

// LowStockChannel redis channel for one retailer
func LowStockChannel(retailerID string) string {
	return fmt.Sprintf("inventory:low_stock:%s", retailerID)
}
