package middleware

import (
	"time" // Request latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Structured logging
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an ID and logs it once it completes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()                       // Start of request
		requestID := c.GetHeader(RequestIDHeader) // Honour an upstream ID
		if requestID == "" {
			requestID = uuid.NewString() // Generate one otherwise
		}
		c.Set("requestID", requestID)        // Available to handlers
		c.Header(RequestIDHeader, requestID) // Echo back to the client
		c.Next()                             // Run the rest of the chain
		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,                        // Request ID
			"method":     c.Request.Method,                 // HTTP method
			"path":       c.Request.URL.Path,               // Request path
			"status":     c.Writer.Status(),                // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Duration
			"client_ip":  c.ClientIP(),                     // Caller address
			"username":   c.GetString(ContextUsername),     // Empty on public routes
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
