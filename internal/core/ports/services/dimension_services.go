package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// DimensionPolicySvcFacade manages the per-tenant account type x dimension type matrix.
type DimensionPolicySvcFacade interface {
	// EnsurePolicies seeds the default matrix when the tenant has no policies and
	// otherwise returns the stored rows unchanged.
	EnsurePolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error)
	UpsertPolicy(ctx context.Context, tenantID string, req dto.UpsertPolicyRequest) (*domain.AccountDimensionPolicy, error)
	ListPolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error)
}

// DimensionValidator checks the dimension assignments of journal lines.
type DimensionValidator interface {
	// ValidateAssignments fails with a *domain.DimensionValidationError on the first offending line.
	ValidateAssignments(ctx context.Context, tenantID string, bookedAt time.Time, lines []domain.DimensionValidationLine) error
}

// DimensionSvcFacade manages dimension master data.
type DimensionSvcFacade interface {
	UpsertDimension(ctx context.Context, tenantID string, req dto.UpsertDimensionRequest, actor string) (*domain.AccountingDimension, error)
	GetDimension(ctx context.Context, tenantID, dimensionID string) (*domain.AccountingDimension, error)
	ListDimensions(ctx context.Context, tenantID string, params dto.ListDimensionsParams) ([]domain.AccountingDimension, error)
}

// ControlAccountSvcFacade resolves and configures sub-ledger control accounts.
type ControlAccountSvcFacade interface {
	// Resolve walks dimension keys (specific, then DEFAULT) and, inside each, currencies
	// (specific, then ANY). The first configured row wins.
	Resolve(ctx context.Context, tenantID, companyCodeID string, subLedger domain.SubLedger, category domain.ControlAccountCategory, dimensions domain.DimensionAssignments, currency string) (string, error)
	ResolvePayablesAccount(ctx context.Context, tenantID, companyCodeID string, dimensions domain.DimensionAssignments, currency string) (string, error)
	ResolveReceivablesAccount(ctx context.Context, tenantID, companyCodeID string, dimensions domain.DimensionAssignments, currency string) (string, error)
	SaveControlAccount(ctx context.Context, tenantID string, req dto.SaveControlAccountRequest, actor string) (*domain.ControlAccountConfig, error)
}
