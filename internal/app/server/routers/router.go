package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retailos/internal/app/server/handlers/conversation"
	"retailos/internal/app/server/handlers/order"
	"retailos/internal/app/server/middlewares"
	"retailos/pkg/logger"
)

// Options router level settings
type Options struct {
	ServiceName string
	CORSOrigins []string
	RateLimiter *middlewares.RateLimiter
	Logger      logger.Logger
}

// SetupRoutes wires middlewares and route groups
func SetupRoutes(
	opts Options,
	conversationHandler *conversation.ConversationHandler,
	orderHandler *order.OrderHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Logger(opts.Logger))
	r.Use(middlewares.Recovery(opts.Logger))
	r.Use(middlewares.CORS(opts.CORSOrigins))
	r.Use(middlewares.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": opts.ServiceName,
		})
	})

	v1 := r.Group("/api/v1")
	if opts.RateLimiter != nil {
		v1.Use(opts.RateLimiter.Middleware())
	}
	{
		conversations := v1.Group("/conversations")
		{
			conversations.POST("/turns", conversationHandler.Turn)
		}

		carts := v1.Group("/carts")
		{
			carts.GET("", conversationHandler.GetCart)
			carts.DELETE("", conversationHandler.CancelCart)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
		}
	}

	return r
}
