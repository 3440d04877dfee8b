package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
)

const RequestIDKey = "request_id"

// RequestID attaches a request id to every request, honoring one the
// client already sent.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		ctx.Set(RequestIDKey, id)
		ctx.Header("X-Request-ID", id)
		ctx.Next()
	}
}

// RequestLogger logs one line per request with method, path, status
// and latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.WithComponent("http")
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		requestLog.Logger.Info().
			Str("request_id", ctx.GetString(RequestIDKey)).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
