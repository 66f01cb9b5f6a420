package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalDraft  JournalStatus = "DRAFT"
	JournalPosted JournalStatus = "POSTED"
)

// JournalEntry is a balanced set of lines booked into one ledger period.
// Once POSTED it is never changed; corrections are separate entries.
type JournalEntry struct {
	EntryID     string             `json:"entryID"`
	TenantID    string             `json:"tenantID"`
	LedgerID    string             `json:"ledgerID"`
	PeriodID    string             `json:"periodID"`
	Status      JournalStatus      `json:"status"`
	Reference   string             `json:"reference,omitempty"`
	Description string             `json:"description,omitempty"`
	BookedAt    time.Time          `json:"bookedAt"`
	PostedAt    *time.Time         `json:"postedAt,omitempty"`
	Lines       []JournalEntryLine `json:"lines"`
	Version     int64              `json:"version"`
	AuditFields
}

// DraftEntryParams carries what NewDraftEntry needs besides the lines.
type DraftEntryParams struct {
	EntryID      string
	TenantID     string
	LedgerID     string
	PeriodID     string
	BaseCurrency string
	Reference    string
	Description  string
	BookedAt     time.Time
}

// CheckEntryStructure requires at least one line on each side.
func CheckEntryStructure(directions []EntryDirection) error {
	var debit, credit bool
	for _, d := range directions {
		switch d {
		case Debit:
			debit = true
		case Credit:
			credit = true
		}
	}
	if !debit || !credit {
		return fmt.Errorf("%w: got debit=%t credit=%t", apperrors.ErrUnbalancedEntryStructure, debit, credit)
	}
	return nil
}

// NewDraftEntry builds a DRAFT entry from lines already expressed in the base currency.
func NewDraftEntry(p DraftEntryParams, lines []JournalEntryLine) (*JournalEntry, error) {
	base := NormalizeCurrency(p.BaseCurrency)
	directions := make([]EntryDirection, 0, len(lines))
	for i, l := range lines {
		if !l.Direction.Valid() {
			return nil, fmt.Errorf("%w: line %d has unknown direction %q", apperrors.ErrValidation, i+1, l.Direction)
		}
		if !l.Amount.IsPositive() || !l.OriginalAmount.IsPositive() {
			return nil, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		if l.Amount.Currency != base {
			return nil, fmt.Errorf("%w: line %d is in %s, ledger base currency is %s",
				apperrors.ErrCurrencyMismatch, i+1, l.Amount.Currency, base)
		}
		directions = append(directions, l.Direction)
	}
	if err := CheckEntryStructure(directions); err != nil {
		return nil, err
	}

	entry := &JournalEntry{
		EntryID:     p.EntryID,
		TenantID:    p.TenantID,
		LedgerID:    p.LedgerID,
		PeriodID:    p.PeriodID,
		Status:      JournalDraft,
		Reference:   strings.TrimSpace(p.Reference),
		Description: strings.TrimSpace(p.Description),
		BookedAt:    p.BookedAt.UTC(),
		Lines:       lines,
	}
	debit, credit, err := entry.Totals()
	if err != nil {
		return nil, err
	}
	if debit.AmountMinor != credit.AmountMinor {
		return nil, fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedEntry, debit, credit)
	}
	return entry, nil
}

// Post moves a DRAFT entry to POSTED.
func (e *JournalEntry) Post(at time.Time) error {
	if e.Status != JournalDraft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrInvalidTransition, e.EntryID, e.Status)
	}
	postedAt := at.UTC()
	e.Status = JournalPosted
	e.PostedAt = &postedAt
	return nil
}

// Totals sums the base-currency amounts per side.
func (e *JournalEntry) Totals() (Money, Money, error) {
	currency := ""
	if len(e.Lines) > 0 {
		currency = e.Lines[0].Amount.Currency
	}
	debit, credit := ZeroMoney(currency), ZeroMoney(currency)
	var err error
	for _, l := range e.Lines {
		switch l.Direction {
		case Debit:
			debit, err = debit.Add(l.Amount)
		case Credit:
			credit, err = credit.Add(l.Amount)
		}
		if err != nil {
			return Money{}, Money{}, err
		}
	}
	return debit, credit, nil
}
