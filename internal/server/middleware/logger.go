package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"veilmarket/utils"
)

// RequestLogger logs incoming requests with timing
func RequestLogger(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"role":    string(Role(c)),
		"latency": time.Since(start).String(),
	})
}
