package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Observer receives request timing samples.
type Observer interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Middleware returns middleware that captures request metrics through the
// observer.
func Middleware(obs Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if obs == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		obs.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), duration)
	}
}
