package response

import (
	"retailos/internal/app/domains/entity/etline"
	"retailos/internal/app/domains/entity/etorder"
	"retailos/internal/app/domains/modules/mdorder"
	"retailos/internal/app/domains/services/svconversation"
)

// FromTurnResult converts a turn result into the response DTO
func FromTurnResult(res *svconversation.TurnResult) *TurnResponse {
	notices := make([]*NoticeResponse, 0, len(res.Notices))
	for _, n := range res.Notices {
		notices = append(notices, &NoticeResponse{Code: n.Code, Item: n.Item, Message: n.Message})
	}

	resp := &TurnResponse{
		State:   string(res.Cart.State),
		Version: res.Cart.Version,
		Summary: FromPartition(&res.Summary),
		Notices: notices,
	}
	if res.Order != nil {
		resp.Order = FromCreatedOrder(res.Order)
	}
	if res.Conflict != nil {
		resp.Conflict = FromConflict(res.Conflict)
	}
	return resp
}

// FromPartition converts the three-way partition; empty sets render as []
func FromPartition(p *etline.Partition) *SummaryResponse {
	resp := &SummaryResponse{
		Available:   fromResolved(p.Available),
		LowStock:    fromResolved(p.LowStock),
		Unavailable: make([]*UnavailableResponse, 0, len(p.Unavailable)),
		Total:       p.Total(),
	}
	for _, u := range p.Unavailable {
		alternatives := u.Alternatives
		if alternatives == nil {
			alternatives = []string{}
		}
		resp.Unavailable = append(resp.Unavailable, &UnavailableResponse{
			RequestedName: u.RequestedName,
			Name:          u.CanonicalName,
			Quantity:      u.Quantity,
			Unit:          u.Unit,
			AvailableQty:  u.AvailableQty,
			Reason:        string(u.Reason),
			Detail:        u.Detail,
			Alternatives:  alternatives,
		})
	}
	return resp
}

func fromResolved(lines []etline.ResolvedLine) []*LineResponse {
	out := make([]*LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, &LineResponse{
			Name:          l.CanonicalName,
			RequestedName: l.RequestedName,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
			AvailableQty:  l.StockQty,
		})
	}
	return out
}

// FromCreatedOrder the short commit response
func FromCreatedOrder(order *etorder.Order) *OrderCreatedResponse {
	return &OrderCreatedResponse{
		OrderID:    order.ID,
		OrderNo:    order.OrderNo,
		Total:      order.Total,
		ItemsCount: order.ItemsCount(),
	}
}

// FromConflict the lines that blocked a commit
func FromConflict(err *mdorder.CommitConflictError) *ConflictResponse {
	lines := make([]*ChangedLineResponse, 0, len(err.Changed))
	for _, c := range err.Changed {
		lines = append(lines, &ChangedLineResponse{
			Name:           c.CanonicalName,
			RequestedQty:   c.RequestedQty,
			AvailableQty:   c.AvailableQty,
			Classification: string(c.Classification),
			Reason:         string(c.Reason),
		})
	}
	return &ConflictResponse{Conflict: true, ChangedLines: lines}
}

// FromOrderEntity converts an order into the response DTO
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	lines := make([]*OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, &OrderLineResponse{
			Name:      l.CanonicalName,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return &OrderResponse{
		ID:         order.ID,
		OrderNo:    order.OrderNo,
		RetailerID: order.RetailerID,
		CustomerID: order.CustomerID,
		Lines:      lines,
		Total:      order.Total,
		ItemsCount: order.ItemsCount(),
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
	}
}

// FromOrderList one page of orders
func FromOrderList(orders []*etorder.Order, total int64, page, limit int) *OrderListResponse {
	items := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, FromOrderEntity(o))
	}
	return &OrderListResponse{Items: items, Total: total, Page: page, Limit: limit}
}
