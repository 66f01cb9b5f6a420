package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in a fixed order.
func AccountTypes() []AccountType {
	return []AccountType{Asset, Liability, Equity, Revenue, Expense}
}

// Valid reports whether t is one of the closed set of account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a general-ledger account within a chart.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	CurrencyCode    string      `json:"currencyCode"`
	ParentAccountID string      `json:"parentAccountID,omitempty"` // empty for top-level accounts
	IsPosting       bool        `json:"isPosting"`                 // only posting accounts receive journal lines
}

// ChartOfAccounts owns its accounts; parent references never leave the chart.
type ChartOfAccounts struct {
	ChartID      string             `json:"chartID"`
	TenantID     string             `json:"tenantID"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	BaseCurrency string             `json:"baseCurrency"`
	Accounts     map[string]Account `json:"accounts"`
	Version      int64              `json:"version"`
	AuditFields
}

// DefineAccount adds account to the chart after enforcing the chart's structural rules.
func (c *ChartOfAccounts) DefineAccount(account Account) error {
	code := strings.TrimSpace(account.Code)
	if code == "" {
		return fmt.Errorf("%w: account code must not be blank", apperrors.ErrValidation)
	}
	if strings.TrimSpace(account.Name) == "" {
		return fmt.Errorf("%w: account name must not be blank", apperrors.ErrValidation)
	}
	if !account.AccountType.Valid() {
		return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, account.AccountType)
	}
	account.CurrencyCode = NormalizeCurrency(account.CurrencyCode)
	if !IsCurrencyCode(account.CurrencyCode) {
		return fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, account.CurrencyCode)
	}
	for _, existing := range c.Accounts {
		if strings.EqualFold(existing.Code, code) {
			return fmt.Errorf("%w: account code %s already defined in chart %s", apperrors.ErrDuplicate, code, c.ChartID)
		}
	}
	if account.ParentAccountID != "" {
		parent, ok := c.Accounts[account.ParentAccountID]
		if !ok {
			return fmt.Errorf("%w: parent account %s not in chart %s", apperrors.ErrValidation, account.ParentAccountID, c.ChartID)
		}
		if parent.IsPosting {
			return fmt.Errorf("%w: parent account %s is a posting account", apperrors.ErrValidation, parent.Code)
		}
	}

	account.Code = code
	if c.Accounts == nil {
		c.Accounts = make(map[string]Account)
	}
	c.Accounts[account.AccountID] = account
	return nil
}

// Account looks up an account by id.
func (c *ChartOfAccounts) Account(accountID string) (Account, bool) {
	a, ok := c.Accounts[accountID]
	return a, ok
}
