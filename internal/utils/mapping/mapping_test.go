package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalEntryMapping_PreservesLineOrderAndDimensions(t *testing.T) {
	entry := domain.JournalEntry{
		EntryID:  "e1",
		TenantID: "t1",
		Status:   domain.JournalPosted,
		BookedAt: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Lines: []domain.JournalEntryLine{
			{LineID: "a", AccountID: "cash", Direction: domain.Debit,
				Amount: domain.Money{AmountMinor: 1200, Currency: "USD"}, OriginalAmount: domain.Money{AmountMinor: 1000, Currency: "EUR"},
				OriginalCurrency: "EUR", Dimensions: domain.DimensionAssignments{CostCenterID: "cc-1"}},
			{LineID: "b", AccountID: "sales", Direction: domain.Credit,
				Amount: domain.Money{AmountMinor: 1200, Currency: "USD"}, OriginalAmount: domain.Money{AmountMinor: 1200, Currency: "USD"},
				OriginalCurrency: "USD"},
		},
	}

	header, lines := mapping.ToModelJournalEntry(entry)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].LineNo)
	assert.Equal(t, 2, lines[1].LineNo)
	require.NotNil(t, lines[0].CostCenterID)
	assert.Nil(t, lines[1].CostCenterID)

	back := mapping.ToDomainJournalEntry(header, lines)
	assert.Equal(t, entry.Lines, back.Lines)
	assert.True(t, back.Lines[0].IsForeign())
}

func TestChartMapping_ParentIsNullable(t *testing.T) {
	chart := domain.ChartOfAccounts{
		ChartID: "c1",
		Accounts: map[string]domain.Account{
			"root": {AccountID: "root", Code: "1", AccountType: domain.Asset, CurrencyCode: "USD"},
			"cash": {AccountID: "cash", Code: "1000", AccountType: domain.Asset, CurrencyCode: "USD", ParentAccountID: "root", IsPosting: true},
		},
	}

	header, accounts := mapping.ToModelChart(chart)
	for _, a := range accounts {
		assert.Equal(t, "c1", a.ChartID)
		if a.AccountID == "root" {
			assert.Nil(t, a.ParentAccountID)
		}
	}

	back := mapping.ToDomainChart(header, accounts)
	assert.Equal(t, chart.Accounts, back.Accounts)
}
