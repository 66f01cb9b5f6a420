package dto

import "github.com/SscSPs/ledger_core/internal/core/domain"

// CreateLedgerRequest creates a ledger, creating its chart when ChartOfAccountsID is empty.
type CreateLedgerRequest struct {
	ChartOfAccountsID string `json:"chartOfAccountsID" binding:"omitempty,uuid"`
	ChartCode         string `json:"chartCode" binding:"required_without=ChartOfAccountsID"`
	ChartName         string `json:"chartName" binding:"required_without=ChartOfAccountsID"`
	BaseCurrency      string `json:"baseCurrency" binding:"required,currency_code"`
}

// DefineAccountRequest adds an account to a chart.
type DefineAccountRequest struct {
	Code            string             `json:"code" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode    string             `json:"currencyCode" binding:"required,currency_code"`
	ParentAccountID string             `json:"parentAccountID" binding:"omitempty,uuid"`
	IsPosting       bool               `json:"isPosting"`
}

// CreateLedgerResponse returns the ledger and the chart it books against.
type CreateLedgerResponse struct {
	Ledger domain.Ledger          `json:"ledger"`
	Chart  domain.ChartOfAccounts `json:"chart"`
}
