package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InverseRateScale is the number of decimal places kept when inverting a rate.
const InverseRateScale int32 = 12

// ExchangeRate says how many units of QuoteCurrency one unit of BaseCurrency buys.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	AsOf           time.Time       `json:"asOf"`
	AuditFields
}

// NewExchangeRate validates the codes and requires a positive rate.
func NewExchangeRate(base, quote string, rate decimal.Decimal, asOf time.Time) (*ExchangeRate, error) {
	base, quote = NormalizeCurrency(base), NormalizeCurrency(quote)
	if !IsCurrencyCode(base) || !IsCurrencyCode(quote) {
		return nil, fmt.Errorf("%w: invalid currency pair %s/%s", apperrors.ErrValidation, base, quote)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	return &ExchangeRate{BaseCurrency: base, QuoteCurrency: quote, Rate: rate, AsOf: asOf}, nil
}

// IdentityRate is the rate of a currency against itself.
func IdentityRate(currency string, asOf time.Time) *ExchangeRate {
	cur := NormalizeCurrency(currency)
	return &ExchangeRate{BaseCurrency: cur, QuoteCurrency: cur, Rate: decimal.NewFromInt(1), AsOf: asOf}
}

// Convert turns a base-currency amount into quote-currency minor units, rounding half-up.
func (r *ExchangeRate) Convert(m Money) (Money, error) {
	if m.Currency != r.BaseCurrency {
		return Money{}, fmt.Errorf("%w: rate %s/%s cannot convert %s", apperrors.ErrCurrencyMismatch,
			r.BaseCurrency, r.QuoteCurrency, m.Currency)
	}
	converted := decimal.NewFromInt(m.AmountMinor).Mul(r.Rate).Round(0)
	return Money{AmountMinor: converted.IntPart(), Currency: r.QuoteCurrency}, nil
}

// Invert returns the reverse rate (1/rate) rounded half-up to InverseRateScale places.
func (r *ExchangeRate) Invert() *ExchangeRate {
	return &ExchangeRate{
		ExchangeRateID: r.ExchangeRateID,
		BaseCurrency:   r.QuoteCurrency,
		QuoteCurrency:  r.BaseCurrency,
		Rate:           decimal.NewFromInt(1).DivRound(r.Rate, InverseRateScale),
		AsOf:           r.AsOf,
		AuditFields:    r.AuditFields,
	}
}
