package middlewares

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"retailos/internal/app/pkg/ginx"
	"retailos/pkg/logger"
)

// ErrorHandler renders errors handlers attached with c.Error but did not answer
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			ginx.InternalError(c, c.Errors.Last().Error())
		}
	}
}

// Recovery turns a panic into a 500 envelope and logs it
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.ErrorContext(c.Request.Context(), "Panic recovered",
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		ginx.InternalError(c, "internal server error")
		c.Abort()
	})
}
