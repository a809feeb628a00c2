// Package payment creates and verifies card payment intents with the
// external payment provider.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("price must be a positive amount")
	ErrNotConfigured = errors.New("payment provider is not configured")
	ErrNotConfirmed  = errors.New("payment has not been confirmed by the provider")
)

const StatusSucceeded = "succeeded"

// Intent is the provider's view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

type Provider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a price in currency units to the smallest currency
// unit, rounding half away from zero to a whole number.
func ToMinorUnits(price float64) (int64, error) {
	amount := decimal.NewFromFloat(price)
	if !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}
	return amount.Mul(hundred).Round(0).IntPart(), nil
}

// Confirm checks with the provider that transactionID names a succeeded
// intent in currency. A positive expectedAmount must match the intent's amount.
func Confirm(ctx context.Context, provider Provider, transactionID, currency string, expectedAmount int64) (*Intent, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: missing transaction id", ErrNotConfirmed)
	}
	intent, err := provider.GetIntent(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if intent.Status != StatusSucceeded {
		return nil, fmt.Errorf("%w: intent %s is %s", ErrNotConfirmed, intent.ID, intent.Status)
	}
	if !strings.EqualFold(intent.Currency, currency) {
		return nil, fmt.Errorf("%w: intent %s is in %q, expected %q", ErrNotConfirmed, intent.ID, intent.Currency, currency)
	}
	if expectedAmount > 0 && intent.Amount != expectedAmount {
		return nil, fmt.Errorf("%w: intent %s amount %d, expected %d", ErrNotConfirmed, intent.ID, intent.Amount, expectedAmount)
	}
	return intent, nil
}

// FromMinorUnits converts an amount in the smallest currency unit back to
// currency units.
func FromMinorUnits(amount int64) float64 {
	return decimal.New(amount, -2).InexactFloat64()
}

// Disabled is the provider used when no secret key is configured.
type Disabled struct{}

func (Disabled) CreateIntent(context.Context, int64, string) (*Intent, error) {
	return nil, ErrNotConfigured
}

func (Disabled) GetIntent(context.Context, string) (*Intent, error) {
	return nil, ErrNotConfigured
}
