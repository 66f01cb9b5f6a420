package domain

import (
	"strings"
)

// SubLedger identifies the subsidiary ledger a control account represents.
type SubLedger string

const (
	SubLedgerAP SubLedger = "AP"
	SubLedgerAR SubLedger = "AR"
)

func (s SubLedger) Valid() bool { return s == SubLedgerAP || s == SubLedgerAR }

// ControlAccountCategory classifies the balance a control account carries.
type ControlAccountCategory string

const (
	CategoryPayable    ControlAccountCategory = "PAYABLE"
	CategoryReceivable ControlAccountCategory = "RECEIVABLE"
)

func (c ControlAccountCategory) Valid() bool {
	return c == CategoryPayable || c == CategoryReceivable
}

// Wildcard keys used when no specific configuration matches.
const (
	DefaultDimensionKey = "DEFAULT"
	AnyCurrency         = "ANY"
)

// ControlAccountConfig maps a sub-ledger slice to a GL account.
type ControlAccountConfig struct {
	ConfigID      string                 `json:"configID"`
	TenantID      string                 `json:"tenantID"`
	CompanyCodeID string                 `json:"companyCodeID"`
	SubLedger     SubLedger              `json:"subLedger"`
	Category      ControlAccountCategory `json:"category"`
	DimensionKey  string                 `json:"dimensionKey"`
	Currency      string                 `json:"currency"`
	GLAccountID   string                 `json:"glAccountID"`
	AuditFields
}

// Normalize upper-cases the lookup keys and fills in the wildcards when blank.
func (c *ControlAccountConfig) Normalize() {
	c.DimensionKey = strings.ToUpper(strings.TrimSpace(c.DimensionKey))
	if c.DimensionKey == "" {
		c.DimensionKey = DefaultDimensionKey
	}
	c.Currency = NormalizeCurrency(c.Currency)
	if c.Currency == "" {
		c.Currency = AnyCurrency
	}
}

// ControlAccountKey is the full lookup key of one configuration row.
type ControlAccountKey struct {
	TenantID      string
	CompanyCodeID string
	SubLedger     SubLedger
	Category      ControlAccountCategory
	DimensionKey  string
	Currency      string
}

// Key returns the lookup key the config is stored under.
func (c ControlAccountConfig) Key() ControlAccountKey {
	return ControlAccountKey{
		TenantID:      c.TenantID,
		CompanyCodeID: c.CompanyCodeID,
		SubLedger:     c.SubLedger,
		Category:      c.Category,
		DimensionKey:  c.DimensionKey,
		Currency:      c.Currency,
	}
}

// dimensionKeySegment returns the prefix used for t in a composite dimension key.
func dimensionKeySegment(t DimensionType) string {
	switch t {
	case CostCenter:
		return "COSTCENTER"
	case ProfitCenter:
		return "PROFITCENTER"
	case Department:
		return "DEPARTMENT"
	case Project:
		return "PROJECT"
	case BusinessArea:
		return "BUSINESSAREA"
	}
	return string(t)
}

// CompositeDimensionKey joins the present assignments as TYPE:VALUE segments, upper-cased.
// It returns "" when nothing is assigned.
func CompositeDimensionKey(a DimensionAssignments) string {
	var segments []string
	for _, t := range a.Present() {
		id, _ := a.Get(t)
		segments = append(segments, dimensionKeySegment(t)+":"+strings.TrimSpace(id))
	}
	return strings.ToUpper(strings.Join(segments, "|"))
}

// DimensionKeyCandidates lists keys from most specific to DEFAULT.
func DimensionKeyCandidates(a DimensionAssignments) []string {
	if key := CompositeDimensionKey(a); key != "" {
		return []string{key, DefaultDimensionKey}
	}
	return []string{DefaultDimensionKey}
}

// CurrencyCandidates lists the requested currency then ANY, without duplicates.
func CurrencyCandidates(currency string) []string {
	cur := NormalizeCurrency(currency)
	if cur == "" || cur == AnyCurrency {
		return []string{AnyCurrency}
	}
	return []string{cur, AnyCurrency}
}
