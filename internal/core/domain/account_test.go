package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartOfAccounts_DefineAccount(t *testing.T) {
	chart := &domain.ChartOfAccounts{ChartID: "c-1", BaseCurrency: "USD"}

	require.NoError(t, chart.DefineAccount(domain.Account{
		AccountID: "a-1000", Code: "1000", Name: "Assets", AccountType: domain.Asset, CurrencyCode: "usd",
	}))
	require.NoError(t, chart.DefineAccount(domain.Account{
		AccountID: "a-1100", Code: "1100", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "USD",
		ParentAccountID: "a-1000", IsPosting: true,
	}))

	cash, ok := chart.Account("a-1100")
	require.True(t, ok)
	assert.True(t, cash.IsPosting)

	tests := []struct {
		name    string
		account domain.Account
		wantErr error
	}{
		{"blank code", domain.Account{AccountID: "x", Code: " ", Name: "X", AccountType: domain.Asset, CurrencyCode: "USD"}, apperrors.ErrValidation},
		{"duplicate code ignoring case", domain.Account{AccountID: "x", Code: "1100", Name: "X", AccountType: domain.Asset, CurrencyCode: "USD"}, apperrors.ErrDuplicate},
		{"missing parent", domain.Account{AccountID: "x", Code: "2000", Name: "X", AccountType: domain.Asset, CurrencyCode: "USD", ParentAccountID: "nope"}, apperrors.ErrValidation},
		{"posting parent", domain.Account{AccountID: "x", Code: "1110", Name: "X", AccountType: domain.Asset, CurrencyCode: "USD", ParentAccountID: "a-1100"}, apperrors.ErrValidation},
		{"bad currency", domain.Account{AccountID: "x", Code: "3000", Name: "X", AccountType: domain.Equity, CurrencyCode: "US"}, apperrors.ErrValidation},
		{"bad type", domain.Account{AccountID: "x", Code: "4000", Name: "X", AccountType: "INCOME", CurrencyCode: "USD"}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, chart.DefineAccount(tt.account), tt.wantErr)
		})
	}
	assert.Len(t, chart.Accounts, 2)
}
