package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

// dimensionService maintains dimension master data.
type dimensionService struct {
	BaseService
	uow           portsrepo.UnitOfWork
	dimensionRepo portsrepo.DimensionRepositoryFacade
	publisher     portssvc.EventPublisher
}

// NewDimensionService creates the dimension master data service.
func NewDimensionService(uow portsrepo.UnitOfWork, dimensionRepo portsrepo.DimensionRepositoryFacade, publisher portssvc.EventPublisher) portssvc.DimensionSvcFacade {
	return &dimensionService{uow: uow, dimensionRepo: dimensionRepo, publisher: publisher}
}

var _ portssvc.DimensionSvcFacade = (*dimensionService)(nil)

func (s *dimensionService) UpsertDimension(ctx context.Context, tenantID string, req dto.UpsertDimensionRequest, actor string) (*domain.AccountingDimension, error) {
	status := req.Status
	if status == "" {
		status = domain.DimensionDraft
	}
	now := s.Now()
	dimension := domain.AccountingDimension{
		DimensionID:   req.DimensionID,
		TenantID:      tenantID,
		CompanyCodeID: strings.TrimSpace(req.CompanyCodeID),
		Type:          req.Type,
		Code:          strings.TrimSpace(req.Code),
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		ParentID:      req.ParentID,
		Status:        status,
		ValidFrom:     req.ValidFrom.UTC(),
		ValidTo:       req.ValidTo,
		AuditFields:   domain.NewAuditFields(actor, now),
	}
	if dimension.ValidTo != nil {
		validTo := dimension.ValidTo.UTC()
		dimension.ValidTo = &validTo
	}
	if err := dimension.Validate(); err != nil {
		return nil, err
	}

	var saved *domain.AccountingDimension
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		existed := false
		if dimension.DimensionID == "" {
			dimension.DimensionID = uuid.NewString()
		} else {
			existing, err := s.dimensionRepo.FindDimensionByID(ctx, tenantID, dimension.DimensionID)
			switch {
			case err == nil:
				if existing.Type != dimension.Type {
					return fmt.Errorf("%w: dimension %s is a %s and cannot become a %s", apperrors.ErrValidation,
						existing.DimensionID, existing.Type, dimension.Type)
				}
				existed = true
				dimension.Version = existing.Version
				dimension.CreatedAt, dimension.CreatedBy = existing.CreatedAt, existing.CreatedBy
			case errors.Is(err, apperrors.ErrNotFound):
			default:
				return err
			}
		}

		var err error
		saved, err = s.dimensionRepo.SaveDimension(ctx, dimension)
		if err != nil {
			return err
		}
		return s.publisher.PublishDimensionChanged(ctx, saved, domain.DimensionChangeAction(existed, saved))
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to upsert dimension",
			slog.String("tenant_id", tenantID),
			slog.String("code", dimension.Code))
		return nil, err
	}
	return saved, nil
}

func (s *dimensionService) GetDimension(ctx context.Context, tenantID, dimensionID string) (*domain.AccountingDimension, error) {
	return s.dimensionRepo.FindDimensionByID(ctx, tenantID, dimensionID)
}

func (s *dimensionService) ListDimensions(ctx context.Context, tenantID string, params dto.ListDimensionsParams) ([]domain.AccountingDimension, error) {
	dimensions, err := s.dimensionRepo.ListDimensions(ctx, tenantID, portsrepo.DimensionFilter{
		Type:          params.Type,
		CompanyCodeID: params.CompanyCodeID,
		Status:        params.Status,
	})
	if err != nil {
		return nil, err
	}
	if dimensions == nil {
		return []domain.AccountingDimension{}, nil
	}
	return dimensions, nil
}
