package request

import "encoding/json"

// TurnRequest one conversation turn
type TurnRequest struct {
	CustomerID    string         `json:"customer_id" binding:"required,max=64" example:"cust-42"`
	RetailerID    string         `json:"retailer_id" binding:"required,max=64" example:"shop-1"`
	Language      string         `json:"language" binding:"omitempty,max=8" example:"hi"`
	RawText       string         `json:"raw_text" binding:"max=2000" example:"tamatar hata do"`
	DetectedItems []DetectedItem `json:"detected_items"`
}

// DetectedItem one NLP extraction. Not validated here: a malformed item
// comes back as an unavailable line instead of failing the turn.
// Quantity accepts a JSON number or a numeric string.
type DetectedItem struct {
	Name     string          `json:"name" example:"rice"`
	Quantity json.RawMessage `json:"quantity" swaggertype:"number" example:"3"`
	Unit     string          `json:"unit" example:"kg"`
}

// SessionQuery identifies one cart
type SessionQuery struct {
	CustomerID string `form:"customer_id" binding:"required,max=64"`
	RetailerID string `form:"retailer_id" binding:"required,max=64"`
}
