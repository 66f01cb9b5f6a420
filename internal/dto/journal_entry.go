package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// JournalLineRequest is one candidate line as entered by the caller.
type JournalLineRequest struct {
	AccountID   string                      `json:"accountID" binding:"required"`
	Direction   domain.EntryDirection       `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	AmountMinor int64                       `json:"amountMinor" binding:"required,gt=0"`
	Currency    string                      `json:"currency" binding:"omitempty,currency_code"` // defaults to the ledger base currency
	Description string                      `json:"description"`
	Dimensions  domain.DimensionAssignments `json:"dimensions"`
}

// PostJournalEntryRequest is the posting command.
type PostJournalEntryRequest struct {
	LedgerID    string               `json:"-"`
	PeriodID    string               `json:"-"`
	Reference   string               `json:"reference"`
	Description string               `json:"description"`
	BookedAt    time.Time            `json:"bookedAt" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RunRevaluationRequest revalues the open foreign-currency lines of a period.
type RunRevaluationRequest struct {
	LedgerID      string    `json:"-"`
	PeriodID      string    `json:"-"`
	AsOf          time.Time `json:"asOf" binding:"required"`
	BookedAt      time.Time `json:"bookedAt" binding:"required"`
	GainAccountID string    `json:"gainAccountID" binding:"required"`
	LossAccountID string    `json:"lossAccountID" binding:"required"`
	Reference     string    `json:"reference"`
	Description   string    `json:"description"`
}
