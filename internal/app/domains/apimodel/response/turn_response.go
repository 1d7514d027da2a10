package response

import "github.com/shopspring/decimal"

// TurnResponse cart state after a turn
type TurnResponse struct {
	State    string                `json:"state" example:"BUILDING"`
	Version  int64                 `json:"version" example:"3"`
	Summary  *SummaryResponse      `json:"summary"`
	Notices  []*NoticeResponse     `json:"notices"`
	Order    *OrderCreatedResponse `json:"order,omitempty"`
	Conflict *ConflictResponse     `json:"conflict,omitempty"`
}

// SummaryResponse the three-way availability partition
type SummaryResponse struct {
	Available   []*LineResponse        `json:"available"`
	LowStock    []*LineResponse        `json:"low_stock"`
	Unavailable []*UnavailableResponse `json:"unavailable"`
	Total       decimal.Decimal        `json:"total" example:"180"`
}

// LineResponse an orderable line with pricing
type LineResponse struct {
	Name          string          `json:"name" example:"rice"`
	RequestedName string          `json:"requested_name" example:"chawal"`
	Quantity      decimal.Decimal `json:"quantity" example:"3"`
	Unit          string          `json:"unit" example:"kg"`
	UnitPrice     decimal.Decimal `json:"unit_price" example:"60"`
	LineTotal     decimal.Decimal `json:"line_total" example:"180"`
	AvailableQty  decimal.Decimal `json:"available_qty" example:"50"`
}

// UnavailableResponse a line that cannot be ordered, with same-category alternatives
type UnavailableResponse struct {
	RequestedName string          `json:"requested_name" example:"milk"`
	Name          string          `json:"name,omitempty" example:"milk"`
	Quantity      decimal.Decimal `json:"quantity" example:"25"`
	Unit          string          `json:"unit,omitempty" example:"litre"`
	AvailableQty  decimal.Decimal `json:"available_qty" example:"20"`
	Reason        string          `json:"reason" example:"insufficient_stock"`
	Detail        string          `json:"detail,omitempty"`
	Alternatives  []string        `json:"alternatives"`
}

// NoticeResponse message for the presentation layer
type NoticeResponse struct {
	Code    string `json:"code" example:"not_in_cart"`
	Item    string `json:"item,omitempty" example:"paneer"`
	Message string `json:"message" example:"item is not in the cart"`
}
