package etorder

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrderID    = errors.New("order ID cannot be empty")
	ErrInvalidRetailerID = errors.New("retailer ID cannot be empty")
	ErrInvalidCustomerID = errors.New("customer ID cannot be empty")
	ErrNoLines           = errors.New("order needs at least one line")
	ErrInvalidLine       = errors.New("order line needs a name, a positive quantity and a total")
)

// Order committed order, immutable once created
type Order struct {
	ID         string
	OrderNo    int64
	RetailerID string
	CustomerID string
	Lines      []*Line
	Total      decimal.Decimal
	Notes      string
	CreatedAt  time.Time
}

// Line one committed item at the price in force at commit time
type Line struct {
	CanonicalName string          `json:"canonical_name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Remaining     decimal.Decimal `json:"remaining_qty"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// NewOrder validates lines and sums the total from them
func NewOrder(id string, orderNo int64, retailerID, customerID string, lines []*Line, notes string) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if retailerID == "" {
		return nil, ErrInvalidRetailerID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	total := decimal.Zero
	for _, l := range lines {
		if l == nil || l.CanonicalName == "" || !l.Quantity.IsPositive() || l.LineTotal.IsNegative() {
			return nil, ErrInvalidLine
		}
		total = total.Add(l.LineTotal)
	}

	return &Order{
		ID:         id,
		OrderNo:    orderNo,
		RetailerID: retailerID,
		CustomerID: customerID,
		Lines:      lines,
		Total:      total,
		Notes:      notes,
		CreatedAt:  time.Now(),
	}, nil
}

// ItemsCount number of distinct committed items
func (o *Order) ItemsCount() int {
	return len(o.Lines)
}

// LowStockLines committed lines that left stock under the min level
func (o *Order) LowStockLines() []*Line {
	var out []*Line
	for _, l := range o.Lines {
		if l.Remaining.LessThan(l.MinStockLevel) {
			out = append(out, l)
		}
	}
	return out
}
