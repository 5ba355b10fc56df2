package middleware

import (
	"time"

	"github.com/base14/examples/gin-product-catalog/internal/logging"
	"github.com/gin-gonic/gin"
)

// AccessLog writes one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		entry := logging.WithFields(c.Request.Context(), map[string]interface{}{
			"http.method":      c.Request.Method,
			"http.route":       route,
			"http.status_code": c.Writer.Status(),
			"http.duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			"http.client_ip":   c.ClientIP(),
			"http.request_id":  GetRequestID(c),
		})

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request completed")
		case status >= 400:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
