package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retailos/pkg/logger"
)

// HeaderRequestID carries the trace id in and out
const HeaderRequestID = "X-Request-ID"

// Logger attaches a trace id to the request context and logs every request
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		ctx := logger.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, traceID)

		c.Next()

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case c.Writer.Status() >= 500:
			log.ErrorContext(ctx, "HTTP request", kv...)
		case c.Writer.Status() >= 400:
			log.WarnContext(ctx, "HTTP request", kv...)
		default:
			log.InfoContext(ctx, "HTTP request", kv...)
		}
	}
}
