package order

import (
	"errors"

	"github.com/gin-gonic/gin"

	"retailos/internal/app/domains/apimodel/request"
	"retailos/internal/app/domains/apimodel/response"
	"retailos/internal/app/domains/modules/mdorder"
	"retailos/internal/app/pkg/ginx"
)

// Create godoc
// @Summary      Commit the confirmed cart lines
// @Description  Re-validates every line against live stock. On any change the
// @Description  commit is aborted as a whole and 409 lists the changed lines.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body request.CreateOrderRequest true "confirmed items"
// @Success      200 {object} ginx.Response{data=response.OrderCreatedResponse}
// @Failure      400 {object} ginx.Response "empty commit or items not in the cart"
// @Failure      404 {object} ginx.Response "no cart"
// @Failure      409 {object} ginx.Response{data=response.ConflictResponse}
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), req.ToCheckout())
	if err != nil {
		var conflict *mdorder.CommitConflictError
		if errors.As(err, &conflict) {
			ginx.Conflict(c, "stock changed, please review the cart", response.FromConflict(conflict))
			return
		}
		h.fail(c, err, "create order failed")
		return
	}

	ginx.Success(c, response.FromCreatedOrder(order))
}
