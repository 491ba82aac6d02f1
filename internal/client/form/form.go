// Package form checks user input before it is sent to the server.
package form

import (
	"strings"

	"payment_tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// ValidateCredentials requires both login fields.
func ValidateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.Errorf(domain.ErrValidation, "Please fill out all the details.")
	}
	return nil
}

// ValidatePayment checks the send-money form and returns the parsed amount.
func ValidatePayment(receiver, amount string) (decimal.Decimal, error) {
	if strings.TrimSpace(receiver) == "" {
		return decimal.Zero, domain.Errorf(domain.ErrValidation, "Please enter a receiver.")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, domain.Errorf(domain.ErrValidation, "Please enter a valid amount.")
	}
	return d, nil
}
