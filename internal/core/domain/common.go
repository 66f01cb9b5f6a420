package domain

import (
	"strings"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // subject of the token that issued the command
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update with the same actor and instant.
func NewAuditFields(actor string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actor,
		LastUpdatedAt: at,
		LastUpdatedBy: actor,
	}
}

// Touch records an update.
func (a *AuditFields) Touch(actor string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actor
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCurrencyCode reports whether code looks like an ISO-4217 alphabetic code.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// StartOfDayUTC truncates t to midnight UTC.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
