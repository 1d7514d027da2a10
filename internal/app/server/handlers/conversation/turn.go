package conversation

import (
	"errors"

	"github.com/gin-gonic/gin"

	"retailos/internal/app/domains/apimodel/request"
	"retailos/internal/app/domains/apimodel/response"
	"retailos/internal/app/domains/entity/etcart"
	"retailos/internal/app/pkg/errorx"
	"retailos/internal/app/pkg/ginx"
)

// Turn godoc
// @Summary      Process one conversation turn
// @Description  Applies NLP-detected items, or a locally parsed command when
// @Description  detected_items is absent, and returns the cart with its
// @Description  available / low_stock / unavailable partition.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        request body request.TurnRequest true "turn"
// @Success      200 {object} ginx.Response{data=response.TurnResponse}
// @Failure      400 {object} ginx.Response
// @Failure      500 {object} ginx.Response
// @Router       /conversations/turns [post]
func (h *ConversationHandler) Turn(c *gin.Context) {
	var req request.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	res, err := h.conversationService.HandleTurn(c.Request.Context(), req.ToTurn())
	if err != nil {
		h.fail(c, err, "handle turn failed")
		return
	}

	ginx.Success(c, response.FromTurnResult(res))
}

func (h *ConversationHandler) fail(c *gin.Context, err error, msg string) {
	if errors.Is(err, etcart.ErrInvalidSession) {
		ginx.BadRequest(c, err.Error())
		return
	}
	if be, ok := errorx.FromError(err); ok {
		ginx.BusinessError(c, be)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), msg, "error", err)
	ginx.InternalError(c, "internal server error")
}
