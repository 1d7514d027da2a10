package domains

import (
	"retailos/common/model"
	"retailos/internal/business"
	"retailos/internal/domains/common"
	"retailos/internal/domains/handlers/stock"
)

// HandlerMap action_type -> handler constructor
type HandlerMap map[string]common.HandlerServProc

// NewHandlerMap routing table of every job the worker understands
func NewHandlerMap(restock *business.RestockService) HandlerMap {
	return HandlerMap{
		model.ActionTypeStockCheck: stock.NewHandlerProc(restock),
	}
}
