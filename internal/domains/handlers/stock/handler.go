package stock

import (
	"context"
	"encoding/json"
	"fmt"

	"retailos/common/model"
	"retailos/internal/business"
	"retailos/internal/domains/common"
	"retailos/internal/domains/common/job"
	"retailos/internal/domains/common/response"
)

// StockCheckHandler handles stock_check jobs published after a commit
type StockCheckHandler struct {
	ctx     context.Context
	meta    *job.Meta
	data    model.StockCheckBusinessData
	service *business.RestockService
}

// NewHandlerProc binds the restock service into a HandlerServProc
func NewHandlerProc(service *business.RestockService) common.HandlerServProc {
	return func(ctx context.Context, meta *job.Meta, payload json.RawMessage) (common.HandlerServ, error) {
		h, err := NewStockCheckHandler(ctx, meta, payload, service)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}

// NewStockCheckHandler parses and validates the business data
func NewStockCheckHandler(ctx context.Context, meta *job.Meta, payload json.RawMessage, service *business.RestockService) (*StockCheckHandler, error) {
	var data model.StockCheckBusinessData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("unmarshal business data failed: %w", err)
	}
	if data.OrderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}
	if data.RetailerID == "" {
		data.RetailerID = meta.OrgID
	}
	if data.RetailerID == "" {
		return nil, fmt.Errorf("retailer_id is required")
	}

	return &StockCheckHandler{
		ctx:     ctx,
		meta:    meta,
		data:    data,
		service: service,
	}, nil
}

// GetProcess runs the restock check
func (h *StockCheckHandler) GetProcess() *response.Response {
	result, err := h.service.Execute(h.ctx, &business.StockCheckInput{
		RequestID:  h.meta.RequestID,
		OrderID:    h.data.OrderID,
		RetailerID: h.data.RetailerID,
		Lines:      h.data.Lines,
	})

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)
	return resp
}
