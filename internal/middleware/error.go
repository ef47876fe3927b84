package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorClassifier maps an error recorded with c.Error to a status code and
// the message shown to the client
type ErrorClassifier func(err error) (status int, message string)

// ErrorHandler turns the last error a handler recorded into a JSON response
// and recovers panics as 500s. Handlers that already wrote a body are left
// alone.
func ErrorHandler(log *zap.Logger, classify ErrorClassifier) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic while handling request",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.FullPath()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status, message := classify(last.Err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.Error(last.Err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
		}
		c.JSON(status, ErrorResponse{Error: message})
	}
}

// RequestLogger writes one structured entry per request
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if id, ok := UserID(c); ok {
			fields = append(fields, zap.String("user_id", id.String()))
		}
		log.Info("request", fields...)
	}
}
