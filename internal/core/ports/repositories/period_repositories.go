package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods.
type PeriodReader interface {
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriodsByLedger returns every period of the ledger ordered by start date.
	ListPeriodsByLedger(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error)

	// FindOpenPeriodsByLedger returns the OPEN periods of the ledger ordered by start date.
	FindOpenPeriodsByLedger(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting periods.
type PeriodWriter interface {
	// SavePeriod inserts or updates the period. Updates are guarded by Version
	// and fail with apperrors.ErrConflict when another writer got there first.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) (*domain.AccountingPeriod, error)
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
