package models

// ChartOfAccounts is a row of chart_of_accounts.
type ChartOfAccounts struct {
	ChartID      string `db:"chart_id"`
	TenantID     string `db:"tenant_id"`
	Code         string `db:"code"`
	Name         string `db:"name"`
	BaseCurrency string `db:"base_currency"`
	Version      int64  `db:"version"`
	AuditFields
}

// Account represents a general-ledger account within a chart.
type Account struct {
	AccountID       string  `db:"account_id"`
	ChartID         string  `db:"chart_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	AccountType     string  `db:"account_type"`
	CurrencyCode    string  `db:"currency_code"`
	ParentAccountID *string `db:"parent_account_id"` // Nullable
	IsPosting       bool    `db:"is_posting"`
}

// Ledger is a row of ledgers.
type Ledger struct {
	LedgerID          string `db:"ledger_id"`
	TenantID          string `db:"tenant_id"`
	ChartOfAccountsID string `db:"chart_id"`
	BaseCurrency      string `db:"base_currency"`
	Status            string `db:"status"`
	Version           int64  `db:"version"`
	AuditFields
}
