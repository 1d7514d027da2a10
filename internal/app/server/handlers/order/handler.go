package order

import (
	"github.com/gin-gonic/gin"

	"retailos/internal/app/domains/services/svorder"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/ginx"
	"retailos/pkg/logger"
)

// OrderHandler order HTTP handler
type OrderHandler struct {
	orderService *svorder.OrderService
	logger       logger.Logger
}

// NewOrderHandler creates the handler
func NewOrderHandler(orderService *svorder.OrderService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) fail(c *gin.Context, err error, msg string) {
	if be, ok := errorx.FromError(err); ok {
		ginx.BusinessError(c, be)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), msg, "error", err)
	ginx.InternalError(c, "internal server error")
}
