package request

import "github.com/shopspring/decimal"

// CreateOrderRequest commit the confirmed subset of a cart
type CreateOrderRequest struct {
	CustomerID     string          `json:"customer_id" binding:"required,max=64" example:"cust-42"`
	RetailerID     string          `json:"retailer_id" binding:"required,max=64" example:"shop-1"`
	ConfirmedItems []ConfirmedItem `json:"confirmed_items" binding:"dive"`
	Notes          string          `json:"notes" binding:"max=500" example:"ring the bell"`
}

// ConfirmedItem a cart line the customer agreed to; quantity is optional
type ConfirmedItem struct {
	Name     string           `json:"name" binding:"required" example:"rice"`
	Quantity *decimal.Decimal `json:"quantity,omitempty" example:"3"`
}

// ListOrdersQuery order history page
type ListOrdersQuery struct {
	RetailerID string `form:"retailer_id" binding:"required,max=64"`
	CustomerID string `form:"customer_id" binding:"max=64"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
