package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

type dimensionPolicyService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	policyRepo portsrepo.PolicyRepositoryFacade
}

// NewDimensionPolicyService creates the policy engine.
func NewDimensionPolicyService(uow portsrepo.UnitOfWork, policyRepo portsrepo.PolicyRepositoryFacade) portssvc.DimensionPolicySvcFacade {
	return &dimensionPolicyService{uow: uow, policyRepo: policyRepo}
}

var _ portssvc.DimensionPolicySvcFacade = (*dimensionPolicyService)(nil)

// EnsurePolicies never upgrades an existing matrix; it only seeds an empty one.
func (s *dimensionPolicyService) EnsurePolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	existing, err := s.policyRepo.FindPoliciesByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	defaults := domain.DefaultDimensionPolicies(tenantID, uuid.NewString)
	if err := s.policyRepo.SavePolicies(ctx, defaults); err != nil {
		s.LogError(ctx, err, "Failed to seed default dimension policies", slog.String("tenant_id", tenantID))
		return nil, err
	}
	s.LogInfo(ctx, "Seeded default dimension policies",
		slog.String("tenant_id", tenantID),
		slog.Int("count", len(defaults)))
	return defaults, nil
}

func (s *dimensionPolicyService) UpsertPolicy(ctx context.Context, tenantID string, req dto.UpsertPolicyRequest) (*domain.AccountDimensionPolicy, error) {
	if !req.AccountType.Valid() || !req.DimensionType.Valid() || !req.Requirement.Valid() {
		return nil, fmt.Errorf("%w: invalid policy %s/%s/%s", apperrors.ErrValidation,
			req.AccountType, req.DimensionType, req.Requirement)
	}

	policy := domain.AccountDimensionPolicy{
		PolicyID:      uuid.NewString(),
		TenantID:      tenantID,
		AccountType:   req.AccountType,
		DimensionType: req.DimensionType,
		Requirement:   req.Requirement,
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.EnsurePolicies(ctx, tenantID); err != nil {
			return err
		}
		if err := s.policyRepo.DeletePolicy(ctx, tenantID, req.DimensionType, req.AccountType); err != nil {
			return err
		}
		return s.policyRepo.SavePolicies(ctx, []domain.AccountDimensionPolicy{policy})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert dimension policy", slog.String("tenant_id", tenantID))
		return nil, err
	}
	// A reader racing the transaction may have re-cached the old matrix.
	if invalidator, ok := s.policyRepo.(portsrepo.PolicyCacheInvalidator); ok {
		invalidator.InvalidatePolicies(ctx, tenantID)
	}
	return &policy, nil
}

func (s *dimensionPolicyService) ListPolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	return s.EnsurePolicies(ctx, tenantID)
}
