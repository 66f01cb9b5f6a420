package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
)

// PeriodStatus governs whether a period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodFrozen PeriodStatus = "FROZEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod belongs to exactly one ledger.
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"`
	LedgerID  string       `json:"ledgerID"`
	TenantID  string       `json:"tenantID"`
	Code      string       `json:"code"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	Version   int64        `json:"version"` // optimistic concurrency counter
	AuditFields
}

// NewAccountingPeriod creates an OPEN period spanning [start, end].
func NewAccountingPeriod(id, ledgerID, tenantID, code string, start, end time.Time) (*AccountingPeriod, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: period code must not be blank", apperrors.ErrValidation)
	}
	start, end = StartOfDayUTC(start), StartOfDayUTC(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end %s precedes start %s", apperrors.ErrValidation,
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return &AccountingPeriod{
		PeriodID:  id,
		LedgerID:  ledgerID,
		TenantID:  tenantID,
		Code:      code,
		StartDate: start,
		EndDate:   end,
		Status:    PeriodOpen,
	}, nil
}

// AcceptsPostings reports whether journal entries may be booked into the period.
func (p *AccountingPeriod) AcceptsPostings() bool {
	return p.Status == PeriodOpen
}

// Overlaps reports whether the two periods share at least one day.
func (p *AccountingPeriod) Overlaps(o AccountingPeriod) bool {
	return !p.EndDate.Before(o.StartDate) && !o.EndDate.Before(p.StartDate)
}

// NextCloseStatus computes the status a close command moves the period to.
// CLOSED is terminal: every close of a CLOSED period maps back to CLOSED.
func (p *AccountingPeriod) NextCloseStatus(freezeOnly bool) PeriodStatus {
	if p.Status == PeriodClosed {
		return PeriodClosed
	}
	if freezeOnly {
		return PeriodFrozen
	}
	return PeriodClosed
}

// Close applies a close command. It returns the previous status and whether anything changed.
func (p *AccountingPeriod) Close(freezeOnly bool) (PeriodStatus, bool) {
	previous := p.Status
	next := p.NextCloseStatus(freezeOnly)
	if next == previous {
		return previous, false
	}
	p.Status = next
	return previous, true
}

// Reopen moves a FROZEN period back to OPEN.
func (p *AccountingPeriod) Reopen() (PeriodStatus, bool, error) {
	previous := p.Status
	switch p.Status {
	case PeriodOpen:
		return previous, false, nil
	case PeriodFrozen:
		p.Status = PeriodOpen
		return previous, true, nil
	case PeriodClosed:
		return previous, false, fmt.Errorf("%w: period %s is CLOSED and cannot be reopened", apperrors.ErrInvalidTransition, p.Code)
	}
	return previous, false, fmt.Errorf("%w: unknown period status %q", apperrors.ErrInvalidTransition, p.Status)
}
