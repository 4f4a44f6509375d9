package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags each request with a short id and logs method, path,
// status and latency. The id is echoed in the X-Request-ID header so
// frontend reports can be matched to server logs.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.Printf("request id=%s method=%s path=%s status=%d latency=%s",
			requestID, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
