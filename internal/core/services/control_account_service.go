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

type controlAccountService struct {
	BaseService
	repo portsrepo.ControlAccountRepositoryFacade
}

// NewControlAccountService creates the control account resolver.
func NewControlAccountService(repo portsrepo.ControlAccountRepositoryFacade) portssvc.ControlAccountSvcFacade {
	return &controlAccountService{repo: repo}
}

var _ portssvc.ControlAccountSvcFacade = (*controlAccountService)(nil)

func (s *controlAccountService) Resolve(
	ctx context.Context,
	tenantID, companyCodeID string,
	subLedger domain.SubLedger,
	category domain.ControlAccountCategory,
	dimensions domain.DimensionAssignments,
	currency string,
) (string, error) {
	for _, dimensionKey := range domain.DimensionKeyCandidates(dimensions) {
		for _, cur := range domain.CurrencyCandidates(currency) {
			config, err := s.repo.FindControlAccount(ctx, domain.ControlAccountKey{
				TenantID:      tenantID,
				CompanyCodeID: companyCodeID,
				SubLedger:     subLedger,
				Category:      category,
				DimensionKey:  dimensionKey,
				Currency:      cur,
			})
			if err == nil {
				return config.GLAccountID, nil
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return "", err
			}
		}
	}

	err := fmt.Errorf("%w: subLedger=%s category=%s tenant=%s companyCode=%s currency=%s",
		apperrors.ErrConfigurationMissing, subLedger, category, tenantID, companyCodeID, domain.NormalizeCurrency(currency))
	s.LogWarn(ctx, err, "Control account not configured")
	return "", err
}

func (s *controlAccountService) ResolvePayablesAccount(ctx context.Context, tenantID, companyCodeID string, dimensions domain.DimensionAssignments, currency string) (string, error) {
	return s.Resolve(ctx, tenantID, companyCodeID, domain.SubLedgerAP, domain.CategoryPayable, dimensions, currency)
}

func (s *controlAccountService) ResolveReceivablesAccount(ctx context.Context, tenantID, companyCodeID string, dimensions domain.DimensionAssignments, currency string) (string, error) {
	return s.Resolve(ctx, tenantID, companyCodeID, domain.SubLedgerAR, domain.CategoryReceivable, dimensions, currency)
}

func (s *controlAccountService) SaveControlAccount(ctx context.Context, tenantID string, req dto.SaveControlAccountRequest, actor string) (*domain.ControlAccountConfig, error) {
	config := domain.ControlAccountConfig{
		ConfigID:      uuid.NewString(),
		TenantID:      tenantID,
		CompanyCodeID: strings.TrimSpace(req.CompanyCodeID),
		SubLedger:     req.SubLedger,
		Category:      req.Category,
		DimensionKey:  req.DimensionKey,
		Currency:      req.Currency,
		GLAccountID:   strings.TrimSpace(req.GLAccountID),
		AuditFields:   domain.NewAuditFields(actor, s.Now()),
	}
	config.Normalize()

	switch {
	case !config.SubLedger.Valid():
		return nil, fmt.Errorf("%w: unknown sub-ledger %q", apperrors.ErrValidation, config.SubLedger)
	case !config.Category.Valid():
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, config.Category)
	case config.GLAccountID == "":
		return nil, fmt.Errorf("%w: glAccountID is required", apperrors.ErrValidation)
	case config.Currency != domain.AnyCurrency && !domain.IsCurrencyCode(config.Currency):
		return nil, fmt.Errorf("%w: invalid currency %q", apperrors.ErrValidation, config.Currency)
	}

	saved, err := s.repo.SaveControlAccount(ctx, config)
	if err != nil {
		s.LogError(ctx, err, "Failed to save control account",
			slog.String("tenant_id", tenantID),
			slog.String("dimension_key", config.DimensionKey),
			slog.String("currency", config.Currency))
		return nil, err
	}
	return saved, nil
}
