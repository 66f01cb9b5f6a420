package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// LedgerReaderSvc defines read operations for ledgers and charts.
type LedgerReaderSvc interface {
	GetLedger(ctx context.Context, tenantID, ledgerID string) (*domain.Ledger, error)
	GetChart(ctx context.Context, tenantID, chartID string) (*domain.ChartOfAccounts, error)
}

// LedgerWriterSvc defines write operations for ledgers and charts.
type LedgerWriterSvc interface {
	// CreateLedger creates the chart when req names none, then an ACTIVE ledger on it.
	CreateLedger(ctx context.Context, tenantID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, *domain.ChartOfAccounts, error)

	// DefineAccount adds an account to a chart and persists the chart.
	DefineAccount(ctx context.Context, tenantID, chartID string, req dto.DefineAccountRequest, actor string) (*domain.ChartOfAccounts, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

// PeriodSvcFacade drives the accounting period lifecycle.
type PeriodSvcFacade interface {
	OpenPeriod(ctx context.Context, tenantID, ledgerID string, req dto.OpenPeriodRequest, actor string) (*domain.AccountingPeriod, error)

	// ClosePeriod freezes (freezeOnly) or closes the period. A transition to the
	// current status returns the period untouched, without persisting or publishing.
	ClosePeriod(ctx context.Context, tenantID, ledgerID, periodID string, freezeOnly bool, actor string) (*domain.AccountingPeriod, error)

	// ReopenPeriod moves a FROZEN period back to OPEN.
	ReopenPeriod(ctx context.Context, tenantID, ledgerID, periodID string, actor string) (*domain.AccountingPeriod, error)

	GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)
	ListOpenPeriods(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error)
}
