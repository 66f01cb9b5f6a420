package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Money is an amount in minor units of a single currency.
type Money struct {
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
}

// NewMoney normalizes the currency and rejects malformed codes.
func NewMoney(amountMinor int64, currency string) (Money, error) {
	cur := NormalizeCurrency(currency)
	if !IsCurrencyCode(cur) {
		return Money{}, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, currency)
	}
	return Money{AmountMinor: amountMinor, Currency: cur}, nil
}

// ZeroMoney returns a zero amount in currency.
func ZeroMoney(currency string) Money {
	return Money{Currency: NormalizeCurrency(currency)}
}

// MoneyFromMajor converts a major-unit decimal (e.g. 12.34) to minor units at the given scale, rounding half-up.
func MoneyFromMajor(major decimal.Decimal, currency string, scale int32) Money {
	minor := major.Shift(scale).Round(0).IntPart()
	return Money{AmountMinor: minor, Currency: NormalizeCurrency(currency)}
}

// Add returns m+o. Mixing currencies is an error.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s + %s", apperrors.ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{AmountMinor: m.AmountMinor + o.AmountMinor, Currency: m.Currency}, nil
}

// Sub returns m-o. Mixing currencies is an error.
func (m Money) Sub(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s - %s", apperrors.ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{AmountMinor: m.AmountMinor - o.AmountMinor, Currency: m.Currency}, nil
}

func (m Money) Neg() Money {
	return Money{AmountMinor: -m.AmountMinor, Currency: m.Currency}
}

func (m Money) Abs() Money {
	if m.AmountMinor < 0 {
		return m.Neg()
	}
	return m
}

func (m Money) IsZero() bool     { return m.AmountMinor == 0 }
func (m Money) IsPositive() bool { return m.AmountMinor > 0 }

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.AmountMinor, m.Currency)
}
