package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

// dimensionValidationService checks line dimensions against master data and policy.
type dimensionValidationService struct {
	BaseService
	dimensionRepo portsrepo.DimensionReader
	policies      portssvc.DimensionPolicySvcFacade
	metrics       portssvc.MetricsSink
}

// NewDimensionValidationService creates the dimension validator.
func NewDimensionValidationService(
	dimensionRepo portsrepo.DimensionReader,
	policies portssvc.DimensionPolicySvcFacade,
	metrics portssvc.MetricsSink,
) portssvc.DimensionValidator {
	return &dimensionValidationService{
		dimensionRepo: dimensionRepo,
		policies:      policies,
		metrics:       metrics,
	}
}

var _ portssvc.DimensionValidator = (*dimensionValidationService)(nil)

func (s *dimensionValidationService) ValidateAssignments(ctx context.Context, tenantID string, bookedAt time.Time, lines []domain.DimensionValidationLine) error {
	if len(lines) == 0 {
		return nil
	}
	policies, err := s.policies.EnsurePolicies(ctx, tenantID)
	if err != nil {
		return err
	}
	matrix := domain.NewPolicyMatrix(policies)
	bookingDate := domain.StartOfDayUTC(bookedAt)

	for _, line := range lines {
		if line.Dimensions.IsEmpty() {
			s.metrics.RecordOrphanLine(ctx, line.AccountType)
		}
	}

	for _, dimensionType := range domain.DimensionTypes() {
		ids := referencedDimensionIDs(lines, dimensionType)
		if len(ids) == 0 {
			continue
		}
		found, err := s.dimensionRepo.FindDimensionsByIDs(ctx, tenantID, dimensionType, ids)
		if err != nil {
			return err
		}
		for _, line := range lines {
			id, ok := line.Dimensions.Get(dimensionType)
			if !ok {
				continue
			}
			dimension, ok := found[id]
			if !ok {
				return s.fail(ctx, domain.ReasonNotFound, dimensionType, line.AccountType, id, bookingDate)
			}
			if !dimension.IsActiveOn(bookingDate) {
				return s.fail(ctx, domain.ReasonInactive, dimensionType, line.AccountType, id, bookingDate)
			}
		}
	}

	for _, dimensionType := range domain.DimensionTypes() {
		for _, line := range lines {
			if matrix[line.AccountType][dimensionType] != domain.Mandatory {
				continue
			}
			if _, ok := line.Dimensions.Get(dimensionType); !ok {
				return s.fail(ctx, domain.ReasonMandatoryMissing, dimensionType, line.AccountType, "", bookingDate)
			}
		}
	}
	return nil
}

// fail records the failure before returning it so rejected commands stay observable.
func (s *dimensionValidationService) fail(
	ctx context.Context,
	reason domain.DimensionFailureReason,
	dimensionType domain.DimensionType,
	accountType domain.AccountType,
	dimensionID string,
	bookingDate time.Time,
) error {
	s.metrics.RecordDimensionValidationFailure(ctx, reason, dimensionType, accountType)
	err := &domain.DimensionValidationError{
		Reason:        reason,
		DimensionType: dimensionType,
		AccountType:   accountType,
		DimensionID:   dimensionID,
		BookingDate:   bookingDate,
	}
	s.GetLogger(ctx).Warn("Dimension validation failed",
		slog.String("reason", string(reason)),
		slog.String("dimension_type", string(dimensionType)),
		slog.String("account_type", string(accountType)),
		slog.String("dimension_id", dimensionID))
	return err
}

// referencedDimensionIDs returns the distinct ids of one type in line order.
func referencedDimensionIDs(lines []domain.DimensionValidationLine, dimensionType domain.DimensionType) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, line := range lines {
		id, ok := line.Dimensions.Get(dimensionType)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
