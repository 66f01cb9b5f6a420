package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// LedgerReader defines read operations for ledgers.
type LedgerReader interface {
	// FindLedgerByID returns apperrors.ErrNotFound when the ledger does not exist for the tenant.
	FindLedgerByID(ctx context.Context, tenantID, ledgerID string) (*domain.Ledger, error)
}

// LedgerWriter defines write operations for ledgers.
type LedgerWriter interface {
	SaveLedger(ctx context.Context, ledger domain.Ledger) (*domain.Ledger, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// ChartReader defines read operations for charts of accounts.
type ChartReader interface {
	// FindChartByID loads the chart together with all of its accounts.
	FindChartByID(ctx context.Context, tenantID, chartID string) (*domain.ChartOfAccounts, error)
}

// ChartWriter defines write operations for charts of accounts.
type ChartWriter interface {
	// SaveChart upserts the chart and its accounts. A stale Version yields apperrors.ErrConflict.
	SaveChart(ctx context.Context, chart domain.ChartOfAccounts) (*domain.ChartOfAccounts, error)
}

// ChartRepositoryFacade combines all chart repository interfaces.
type ChartRepositoryFacade interface {
	ChartReader
	ChartWriter
}
