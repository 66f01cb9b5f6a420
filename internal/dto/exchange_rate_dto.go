package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for recording an exchange rate.
type CreateExchangeRateRequest struct {
	BaseCurrency  string          `json:"baseCurrency" binding:"required,currency_code"`
	QuoteCurrency string          `json:"quoteCurrency" binding:"required,currency_code,nefield=BaseCurrency"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	AsOf          time.Time       `json:"asOf" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID,omitempty"`
	BaseCurrency   string          `json:"baseCurrency"`
	QuoteCurrency  string          `json:"quoteCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	AsOf           time.Time       `json:"asOf"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		BaseCurrency:   rate.BaseCurrency,
		QuoteCurrency:  rate.QuoteCurrency,
		Rate:           rate.Rate,
		AsOf:           rate.AsOf,
	}
}
