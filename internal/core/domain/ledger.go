package domain

// LedgerStatus is the lifecycle status of a ledger.
type LedgerStatus string

const (
	LedgerActive   LedgerStatus = "ACTIVE"
	LedgerInactive LedgerStatus = "INACTIVE"
)

// Ledger records postings in a single base currency for its whole life.
type Ledger struct {
	LedgerID          string       `json:"ledgerID"`
	TenantID          string       `json:"tenantID"`
	ChartOfAccountsID string       `json:"chartOfAccountsID"`
	BaseCurrency      string       `json:"baseCurrency"`
	Status            LedgerStatus `json:"status"`
	Version           int64        `json:"version"`
	AuditFields
}
