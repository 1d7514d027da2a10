package response

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedResponse successful commit
type OrderCreatedResponse struct {
	OrderID    string          `json:"order_id" example:"6f1c2a9e-8d0b-4b5e-9a57-0c8f1e4d2b11"`
	OrderNo    int64           `json:"order_no" example:"2962381201001"`
	Total      decimal.Decimal `json:"total" example:"180"`
	ItemsCount int             `json:"items_count" example:"1"`
}

// ConflictResponse failed commit; nothing was written
type ConflictResponse struct {
	Conflict     bool                   `json:"conflict" example:"true"`
	ChangedLines []*ChangedLineResponse `json:"changed_lines"`
}

// ChangedLineResponse a line whose availability moved since it was shown
type ChangedLineResponse struct {
	Name           string          `json:"name" example:"paneer"`
	RequestedQty   decimal.Decimal `json:"requested_qty" example:"2"`
	AvailableQty   decimal.Decimal `json:"available_qty" example:"1"`
	Classification string          `json:"classification" example:"unavailable"`
	Reason         string          `json:"reason" example:"insufficient_stock"`
}

// OrderResponse a committed order
type OrderResponse struct {
	ID         string               `json:"id"`
	OrderNo    int64                `json:"order_no"`
	RetailerID string               `json:"retailer_id"`
	CustomerID string               `json:"customer_id"`
	Lines      []*OrderLineResponse `json:"lines"`
	Total      decimal.Decimal      `json:"total"`
	ItemsCount int                  `json:"items_count"`
	Notes      string               `json:"notes,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// OrderLineResponse one committed line
type OrderLineResponse struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderListResponse one page of orders
type OrderListResponse struct {
	Items []*OrderResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
