package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"payment_tracker/internal/domain" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging unexpected failures
)

// statusFor maps the domain error taxonomy to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict // Duplicate account
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized // Bad credentials
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound // Unknown record
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest // Bad input
	default:
		return http.StatusInternalServerError // Anything unexpected
	}
}

// respondError writes err as a JSON error body with the matching status
func respondError(c *gin.Context, err error) {
	status := statusFor(err) // HTTP status for the error
	if status == http.StatusInternalServerError {
		// Log the error with context, the client only sees a generic message
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("requestID"), // Request ID
			"path":       c.FullPath(),             // Route
			"error":      err.Error(),              // Error message
		}).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": domain.Message(err, "Internal server error")})
}
