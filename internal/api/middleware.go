package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plateseries/matriculas/internal/logger"
)

// LoggerMiddleware logs one structured entry per request and records the
// request timing.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		logger.RecordTiming("api.request", duration)

		fields := logger.Fields{
			"method":    c.Request.Method,
			"path":      path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"client_ip": c.ClientIP(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			fields["query"] = query
		}

		if len(c.Errors) > 0 {
			logger.Error("http request failed", fields, c.Errors.Last().Err)
			return
		}

		logger.Info("http request", fields)
	}
}

// CORSMiddleware sets CORS headers for the allowed origins and answers
// preflight requests. An empty or nil list allows every origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowed := allowedOrigin(origin, allowedOrigins); allowed != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// allowedOrigin picks the Access-Control-Allow-Origin value, empty when the
// origin is not allowed. A request without an Origin header reads as
// same-origin.
func allowedOrigin(origin string, allowed []string) string {
	if origin == "" || len(allowed) == 0 {
		return "*"
	}

	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if strings.EqualFold(a, origin) {
			return origin
		}
	}

	return ""
}

// RecoveryMiddleware converts handler panics into 500 responses.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered", logger.Fields{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
					"panic":  fmt.Sprintf("%v", err),
				}, nil)
				logger.IncrCounter("api.panics")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()

		c.Next()
	}
}
