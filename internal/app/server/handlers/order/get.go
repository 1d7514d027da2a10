package order

import (
	"github.com/gin-gonic/gin"

	"retailos/internal/app/domains/apimodel/request"
	"retailos/internal/app/domains/apimodel/response"
	"retailos/internal/app/domains/services/svorder"
	"retailos/internal/app/pkg/ginx"
)

// Get godoc
// @Summary      Order detail
// @Tags         orders
// @Produce      json
// @Param        id path string true "order id (UUID)"
// @Success      200 {object} ginx.Response{data=response.OrderResponse}
// @Failure      404 {object} ginx.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.fail(c, err, "get order failed")
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}

// List godoc
// @Summary      Order history of a customer at a retailer
// @Tags         orders
// @Produce      json
// @Param        retailer_id query string true "retailer"
// @Param        customer_id query string false "customer"
// @Param        page query int false "page, from 1"
// @Param        limit query int false "page size, at most 100"
// @Success      200 {object} ginx.Response{data=response.OrderListResponse}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q request.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), q.RetailerID, q.CustomerID, q.Page, q.Limit)
	if err != nil {
		h.fail(c, err, "list orders failed")
		return
	}

	page, limit := svorder.Paging(q.Page, q.Limit)
	ginx.Success(c, response.FromOrderList(orders, total, page, limit))
}
