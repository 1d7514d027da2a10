package request

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/services/svconversation"
	"retailos/internal/app/domains/services/svorder"
)

// ToTurn converts the DTO into the service request
func (r *TurnRequest) ToTurn() svconversation.TurnRequest {
	var detected []etline.RequestedLine
	if len(r.DetectedItems) > 0 {
		detected = make([]etline.RequestedLine, 0, len(r.DetectedItems))
		for _, item := range r.DetectedItems {
			detected = append(detected, etline.RequestedLine{
				RawText:  strings.TrimSpace(item.Name),
				Quantity: parseQuantity(item.Quantity),
				UnitHint: strings.TrimSpace(item.Unit),
			})
		}
	}

	return svconversation.TurnRequest{
		CustomerID:    r.CustomerID,
		RetailerID:    r.RetailerID,
		Language:      strings.ToLower(strings.TrimSpace(r.Language)),
		RawText:       r.RawText,
		DetectedItems: detected,
	}
}

// parseQuantity reads a number or numeric string. Anything else is zero,
// which availability reports as an invalid quantity.
func parseQuantity(raw json.RawMessage) decimal.Decimal {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero
	}
	if text[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		text = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToCheckout converts the DTO into the service request
func (r *CreateOrderRequest) ToCheckout() svorder.CheckoutRequest {
	items := make([]svorder.ConfirmedItem, 0, len(r.ConfirmedItems))
	for _, item := range r.ConfirmedItems {
		items = append(items, svorder.ConfirmedItem{
			Name:     strings.TrimSpace(item.Name),
			Quantity: item.Quantity,
		})
	}
	return svorder.CheckoutRequest{
		CustomerID: r.CustomerID,
		RetailerID: r.RetailerID,
		Items:      items,
		Notes:      r.Notes,
	}
}
