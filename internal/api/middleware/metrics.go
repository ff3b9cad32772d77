package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPRecorder observes one served request.
type HTTPRecorder interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

func Metrics(recorder HTTPRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if recorder != nil {
			recorder.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
		}
	}
}
