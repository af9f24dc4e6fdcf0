package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/midcare/pflegedoc/internal/http/middlewares"
)

const requestIDHeader = "X-Request-Id"

func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if id == "" {
			id = uuid.NewString()
		}

		ctx.Writer.Header().Set(requestIDHeader, id)

		ctx.Set("request_id", id)

		ctx.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path
		method := ctx.Request.Method

		ctx.Next()

		lat := time.Since(start)
		status := ctx.Writer.Status()

		reqID, _ := ctx.Get("request_id")

		args := []any{
			"method", method, "path", path, "status", status,
			"latency_ms", lat.Milliseconds(), "request_id", reqID,
		}

		// set by RequireAuth further down the chain
		if userID, ok := middlewares.UserIDFromContext(ctx); ok {
			args = append(args, "user_id", userID)
		}

		log.InfoContext(ctx.Request.Context(), "request", args...)
	}
}
