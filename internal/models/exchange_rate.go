package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies effective from AsOf.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	BaseCurrency   string          `db:"base_currency"`
	QuoteCurrency  string          `db:"quote_currency"`
	Rate           decimal.Decimal `db:"rate"`
	AsOf           time.Time       `db:"as_of"`
	AuditFields
}
