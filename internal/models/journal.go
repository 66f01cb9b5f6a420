package models

import "time"

// AccountingPeriod is a row of accounting_periods.
type AccountingPeriod struct {
	PeriodID  string    `db:"period_id"`
	LedgerID  string    `db:"ledger_id"`
	TenantID  string    `db:"tenant_id"`
	Code      string    `db:"code"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	Version   int64     `db:"version"`
	AuditFields
}

// JournalEntry is the header row of a posted entry.
type JournalEntry struct {
	EntryID     string     `db:"entry_id"`
	TenantID    string     `db:"tenant_id"`
	LedgerID    string     `db:"ledger_id"`
	PeriodID    string     `db:"period_id"`
	Status      string     `db:"status"`
	Reference   string     `db:"reference"`
	Description string     `db:"description"`
	BookedAt    time.Time  `db:"booked_at"`
	PostedAt    *time.Time `db:"posted_at"`
	Version     int64      `db:"version"`
	AuditFields
}

// JournalLine is a single line of a journal entry. Dimension columns are nullable.
type JournalLine struct {
	LineID              string  `db:"line_id"`
	EntryID             string  `db:"entry_id"`
	LineNo              int     `db:"line_no"`
	AccountID           string  `db:"account_id"`
	Direction           string  `db:"direction"`
	AmountMinor         int64   `db:"amount_minor"`
	Currency            string  `db:"currency"`
	OriginalAmountMinor int64   `db:"original_amount_minor"`
	OriginalCurrency    string  `db:"original_currency"`
	Description         string  `db:"description"`
	CostCenterID        *string `db:"cost_center_id"`
	ProfitCenterID      *string `db:"profit_center_id"`
	DepartmentID        *string `db:"department_id"`
	ProjectID           *string `db:"project_id"`
	BusinessAreaID      *string `db:"business_area_id"`
}
