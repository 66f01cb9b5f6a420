package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// DimensionFilter narrows ListDimensions. Zero fields do not filter.
type DimensionFilter struct {
	Type          domain.DimensionType
	CompanyCodeID string
	Status        domain.DimensionStatus
}

// DimensionReader defines read operations for dimension master data.
type DimensionReader interface {
	FindDimensionByID(ctx context.Context, tenantID, dimensionID string) (*domain.AccountingDimension, error)

	// FindDimensionsByIDs looks up a set of ids of one type in a single round trip.
	// Ids that do not exist for the tenant are absent from the result.
	FindDimensionsByIDs(ctx context.Context, tenantID string, dimensionType domain.DimensionType, ids []string) (map[string]domain.AccountingDimension, error)

	ListDimensions(ctx context.Context, tenantID string, filter DimensionFilter) ([]domain.AccountingDimension, error)
}

// DimensionWriter defines write operations for dimension master data.
type DimensionWriter interface {
	SaveDimension(ctx context.Context, dimension domain.AccountingDimension) (*domain.AccountingDimension, error)
}

// DimensionRepositoryFacade combines all dimension repository interfaces.
type DimensionRepositoryFacade interface {
	DimensionReader
	DimensionWriter
}

// PolicyReader defines read operations for dimension policies.
type PolicyReader interface {
	FindPoliciesByTenant(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error)
}

// PolicyWriter defines write operations for dimension policies.
type PolicyWriter interface {
	SavePolicies(ctx context.Context, policies []domain.AccountDimensionPolicy) error
	DeletePolicy(ctx context.Context, tenantID string, dimensionType domain.DimensionType, accountType domain.AccountType) error
}

// PolicyCacheInvalidator is implemented by policy stores that keep a tenant cache.
// Callers invoke it once their transaction has committed.
type PolicyCacheInvalidator interface {
	InvalidatePolicies(ctx context.Context, tenantID string)
}

// PolicyRepositoryFacade combines all policy repository interfaces.
type PolicyRepositoryFacade interface {
	PolicyReader
	PolicyWriter
}
