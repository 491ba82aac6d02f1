package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"payment_tracker/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging rejected tokens
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID   = "userID"   // uint account ID
	ContextUsername = "username" // Login identifier from the token subject
)

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Protected route
				"error": err.Error(),  // Parse failure
			}).Debug("Rejected token")
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)    // Store userID in context
		c.Set(ContextUsername, claims.Subject) // Store username in context
		c.Next()                               // Proceed to the next handler
	}
}
