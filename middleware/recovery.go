package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
)

// Recovery middleware recovers from panics and logs the error
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				// Get request ID for tracing
				requestID := GetRequestID(c)

				// Log the panic with stack trace
				slog.Error("panic recovered",
					"error", err,
					"request_id", requestID,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				// JSON for the status poll endpoint, a plain page for browser routes
				if wantsJSON(c) {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"error":      "Internal server error",
						"request_id": requestID,
					})
					return
				}

				c.Abort()
				c.String(http.StatusInternalServerError,
					"Something went wrong. Please try again. (request %s)", requestID)
			}
		}()

		c.Next()
	}
}

func wantsJSON(c *gin.Context) bool {
	if strings.HasSuffix(c.Request.URL.Path, "/status") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
