package model

// ActionTypeStockCheck action type of the post-commit stock job
const ActionTypeStockCheck = "stock_check"

// StockCheckJob post-commit stock job message, API server to worker
type StockCheckJob struct {
	Payload StockCheckPayload `json:"payload"`
}

// StockCheckPayload job payload
type StockCheckPayload struct {
	Data StockCheckData `json:"data"`
}

// StockCheckData job envelope shared by every action type
type StockCheckData struct {
	RequestID  string `json:"request_id"`  // trace id of the committing request
	OrgID      string `json:"org_id"`      // retailer id
	ActionType string `json:"action_type"` // always "stock_check"
	ID         string `json:"id"`          // order id

	Data StockCheckBusinessData `json:"data"`
}

// StockCheckBusinessData everything the worker needs without reading the catalog
type StockCheckBusinessData struct {
	OrderID    string           `json:"order_id"`
	RetailerID string           `json:"retailer_id"`
	Lines      []StockCheckLine `json:"lines"`
}

// StockCheckLine stock left for one committed item; decimals travel as strings
type StockCheckLine struct {
	CanonicalName string `json:"canonical_name"`
	Unit          string `json:"unit"`
	RemainingQty  string `json:"remaining_qty"`
	MinStockLevel string `json:"min_stock_level"`
}
