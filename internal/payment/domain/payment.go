package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountTooLarge = errors.New("amount exceeds gateway limit")
)

// GatewayOrder mirrors the order object a hosted payment provider returns:
// amounts are carried in minor units (paise).
type GatewayOrder struct {
	ID         string    `json:"id"`
	Amount     int64     `json:"amount"`
	AmountDue  int64     `json:"amount_due"`
	AmountPaid int64     `json:"amount_paid"`
	Currency   string    `json:"currency"`
	Receipt    string    `json:"receipt,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToMinorUnits converts a rupee amount to paise, rounding to the nearest
// paisa to keep float inputs like 99.99 exact.
func ToMinorUnits(amount float64) int64 {
	if amount < 0 {
		return 0
	}
	return int64(amount*100 + 0.5)
}
