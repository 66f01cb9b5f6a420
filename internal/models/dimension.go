package models

import "time"

// AccountingDimension is a row of accounting_dimensions.
type AccountingDimension struct {
	DimensionID   string     `db:"dimension_id"`
	TenantID      string     `db:"tenant_id"`
	CompanyCodeID string     `db:"company_code_id"`
	Type          string     `db:"dimension_type"`
	Code          string     `db:"code"`
	Name          string     `db:"name"`
	Description   string     `db:"description"`
	ParentID      *string    `db:"parent_id"`
	Status        string     `db:"status"`
	ValidFrom     time.Time  `db:"valid_from"`
	ValidTo       *time.Time `db:"valid_to"`
	Version       int64      `db:"version"`
	AuditFields
}

// AccountDimensionPolicy is one cell of a tenant's policy matrix.
type AccountDimensionPolicy struct {
	PolicyID      string `db:"policy_id"`
	TenantID      string `db:"tenant_id"`
	AccountType   string `db:"account_type"`
	DimensionType string `db:"dimension_type"`
	Requirement   string `db:"requirement"`
}

// ControlAccountConfig is a row of control_account_configs.
type ControlAccountConfig struct {
	ConfigID      string `db:"config_id"`
	TenantID      string `db:"tenant_id"`
	CompanyCodeID string `db:"company_code_id"`
	SubLedger     string `db:"sub_ledger"`
	Category      string `db:"category"`
	DimensionKey  string `db:"dimension_key"`
	Currency      string `db:"currency"`
	GLAccountID   string `db:"gl_account_id"`
	AuditFields
}
