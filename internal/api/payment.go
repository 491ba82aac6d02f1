package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"payment_tracker/internal/service" // Payment service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact decimal amounts
)

// CreatePaymentRequest represents a payment submitted by the client.
// Fields are stored as sent; only the status is checked
type CreatePaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`   // Payment amount, accepted as number or string
	Receiver string          `json:"receiver"` // Receiver name or ID
	Status   string          `json:"status"`   // Success, Failed or Pending
	Method   string          `json:"method"`   // Payment method
}

// CreatePaymentHandler records a payment. An unknown status is rejected with
// 400 rather than stored, because stats only count the exact Success and
// Failed values
func CreatePaymentHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		payment, err := payments.Create(c.Request.Context(), service.CreatePaymentInput{
			Amount:   req.Amount,   // Payment amount
			Receiver: req.Receiver, // Receiver
			Status:   req.Status,   // Status, validated by the service
			Method:   req.Method,   // Payment method
		})
		if err != nil {
			respondError(c, err) // 400 on unknown status
			return
		}
		c.JSON(http.StatusCreated, payment) // Return the stored record
	}
}

// ListPaymentsHandler returns all payments, newest first
func ListPaymentsHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := payments.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list) // Return payment list
	}
}

// StatsHandler returns the dashboard aggregate
func StatsHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := payments.Stats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats) // Return aggregate
	}
}

// GetPaymentHandler returns a single payment
func GetPaymentHandler(payments *service.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 0) // Path parameter must be a positive integer
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed (numeric string is expected)"})
			return
		}
		payment, err := payments.FindOne(c.Request.Context(), uint(id))
		if err != nil {
			respondError(c, err) // 404 when missing
			return
		}
		c.JSON(http.StatusOK, payment) // Return payment
	}
}
