package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentStatus(t *testing.T) {
	t.Run("known statuses", func(t *testing.T) {
		for _, s := range []string{"Success", "Failed", "Pending"} {
			st, err := ParsePaymentStatus(s)
			require.NoError(t, err)
			assert.Equal(t, PaymentStatus(s), st)
		}
	})

	t.Run("other casing is rejected", func(t *testing.T) {
		for _, s := range []string{"success", "FAILED", "pending ", ""} {
			_, err := ParsePaymentStatus(s)
			assert.ErrorIs(t, err, ErrValidation, s)
		}
	})
}

func TestPaymentJSON(t *testing.T) {
	p := Payment{ID: 7, Amount: decimal.RequireFromString("12.50"), Receiver: "Asha", Status: StatusSuccess, Method: "UPI"}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, 12.5, raw["amount"])
	assert.Equal(t, "Success", raw["status"])
	assert.Contains(t, raw, "createdAt")
}

func TestUserJSONHidesPassword(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Username: "a@b.c", Password: "hash", Role: DefaultRole})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
	assert.Contains(t, string(b), `"username":"a@b.c"`)
}
