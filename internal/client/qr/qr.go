// Package qr decodes payment requests carried in QR codes.
//
// A payment QR code holds a JSON object with a receiver and an amount, for
// example {"receiver":"Asha","amount":250}. The amount may also be a string.
package qr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnreadableQR means the code does not hold JSON.
	ErrUnreadableQR = errors.New("the QR code data could not be processed")
	// ErrInvalidQR means the JSON lacks a receiver or an amount.
	ErrInvalidQR = errors.New("the QR code is missing the required receiver or amount information")
)

// Payload is a decoded payment request.
type Payload struct {
	Receiver string
	Amount   decimal.Decimal
}

type rawPayload struct {
	Receiver string           `json:"receiver"`
	Amount   *decimal.Decimal `json:"amount"`
}

// Parse decodes data scanned from a QR code.
func Parse(data string) (Payload, error) {
	var raw rawPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &raw); err != nil {
		return Payload{}, fmt.Errorf("%w: %s", ErrUnreadableQR, data)
	}
	if strings.TrimSpace(raw.Receiver) == "" || raw.Amount == nil || raw.Amount.IsZero() {
		return Payload{}, ErrInvalidQR
	}
	return Payload{Receiver: strings.TrimSpace(raw.Receiver), Amount: *raw.Amount}, nil
}
