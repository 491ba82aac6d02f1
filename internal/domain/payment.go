package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Exact decimal amounts
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true // Amounts travel as JSON numbers
}

// PaymentStatus is the outcome of a payment attempt
type PaymentStatus string

// Known payment statuses. Matching is exact and case-sensitive.
const (
	StatusSuccess PaymentStatus = "Success" // Payment went through
	StatusFailed  PaymentStatus = "Failed"  // Payment was rejected
	StatusPending PaymentStatus = "Pending" // Payment awaits an outcome
)

// ParsePaymentStatus accepts only the exact spelling of a known status
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(s); st {
	case StatusSuccess, StatusFailed, StatusPending:
		return st, nil // Known status
	}
	return "", Errorf(ErrValidation, "Unknown payment status %q", s) // Anything else is rejected
}

// Payment Model
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"` // Payment amount
	Receiver  string          `gorm:"size:255;not null" json:"receiver"`         // Who received the money
	Status    PaymentStatus   `gorm:"size:32;not null;index" json:"status"`      // Success, Failed or Pending
	Method    string          `gorm:"size:32;not null" json:"method"`            // Payment method, e.g. UPI
	CreatedAt time.Time       `gorm:"autoCreateTime;index" json:"createdAt"`     // Set once on insert
}

// PaymentStats is the dashboard aggregate
type PaymentStats struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"` // Sum of successful payments
	TotalCount   int64           `json:"totalCount"`   // Number of payments
	FailedCount  int64           `json:"failedCount"`  // Number of failed payments
}
