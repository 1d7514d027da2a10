package conversation

import (
	"github.com/gin-gonic/gin"

	"retailos/internal/app/domains/apimodel/request"
	"retailos/internal/app/domains/apimodel/response"
	"retailos/internal/app/pkg/ginx"
)

// GetCart godoc
// @Summary      Current cart
// @Description  Prices the stored cart against live stock without changing its state
// @Tags         carts
// @Produce      json
// @Param        customer_id query string true "customer"
// @Param        retailer_id query string true "retailer"
// @Success      200 {object} ginx.Response{data=response.TurnResponse}
// @Failure      404 {object} ginx.Response
// @Router       /carts [get]
func (h *ConversationHandler) GetCart(c *gin.Context) {
	var q request.SessionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	res, err := h.conversationService.GetCart(c.Request.Context(), q.CustomerID, q.RetailerID)
	if err != nil {
		h.fail(c, err, "get cart failed")
		return
	}

	ginx.Success(c, response.FromTurnResult(res))
}

// CancelCart godoc
// @Summary      Cancel the cart
// @Description  Idempotent; stock is never touched
// @Tags         carts
// @Produce      json
// @Param        customer_id query string true "customer"
// @Param        retailer_id query string true "retailer"
// @Success      200 {object} ginx.Response{data=response.TurnResponse}
// @Router       /carts [delete]
func (h *ConversationHandler) CancelCart(c *gin.Context) {
	var q request.SessionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	res, err := h.conversationService.CancelCart(c.Request.Context(), q.CustomerID, q.RetailerID)
	if err != nil {
		h.fail(c, err, "cancel cart failed")
		return
	}

	ginx.Success(c, response.FromTurnResult(res))
}
