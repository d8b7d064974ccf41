package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// SafeLoggerMiddleware logs requests without query strings or bodies, so no
// personal data from the Telegram side ends up in the logs.
func SafeLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		log.Printf("[%s] %s %s | %d | %v",
			method, path, c.ClientIP(), statusCode, latency)
	}
}
