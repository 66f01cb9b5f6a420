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

// ledgerService administers ledgers and their charts of accounts.
type ledgerService struct {
	BaseService
	uow          portsrepo.UnitOfWork
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	chartRepo    portsrepo.ChartRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewLedgerService creates the ledger administration service.
func NewLedgerService(
	uow portsrepo.UnitOfWork,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	chartRepo portsrepo.ChartRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		uow:          uow,
		ledgerRepo:   ledgerRepo,
		chartRepo:    chartRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateLedger(ctx context.Context, tenantID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, *domain.ChartOfAccounts, error) {
	baseCurrency := domain.NormalizeCurrency(req.BaseCurrency)
	if !domain.IsCurrencyCode(baseCurrency) {
		return nil, nil, fmt.Errorf("%w: invalid base currency %q", apperrors.ErrValidation, req.BaseCurrency)
	}

	var ledger *domain.Ledger
	var chart *domain.ChartOfAccounts
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, baseCurrency); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: base currency %s is not registered", apperrors.ErrValidation, baseCurrency)
			}
			return err
		}

		now := s.Now()
		var err error
		if req.ChartOfAccountsID != "" {
			chart, err = s.chartRepo.FindChartByID(ctx, tenantID, req.ChartOfAccountsID)
			if err != nil {
				return err
			}
			if chart.BaseCurrency != baseCurrency {
				return fmt.Errorf("%w: chart %s is in %s, ledger requested %s", apperrors.ErrCurrencyMismatch,
					chart.ChartID, chart.BaseCurrency, baseCurrency)
			}
		} else {
			chart, err = s.chartRepo.SaveChart(ctx, domain.ChartOfAccounts{
				ChartID:      uuid.NewString(),
				TenantID:     tenantID,
				Code:         strings.TrimSpace(req.ChartCode),
				Name:         strings.TrimSpace(req.ChartName),
				BaseCurrency: baseCurrency,
				Accounts:     map[string]domain.Account{},
				AuditFields:  domain.NewAuditFields(actor, now),
			})
			if err != nil {
				return err
			}
		}

		ledger, err = s.ledgerRepo.SaveLedger(ctx, domain.Ledger{
			LedgerID:          uuid.NewString(),
			TenantID:          tenantID,
			ChartOfAccountsID: chart.ChartID,
			BaseCurrency:      baseCurrency,
			Status:            domain.LedgerActive,
			AuditFields:       domain.NewAuditFields(actor, now),
		})
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to create ledger", slog.String("tenant_id", tenantID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Ledger created",
		slog.String("tenant_id", tenantID),
		slog.String("ledger_id", ledger.LedgerID),
		slog.String("chart_id", chart.ChartID))
	return ledger, chart, nil
}

func (s *ledgerService) DefineAccount(ctx context.Context, tenantID, chartID string, req dto.DefineAccountRequest, actor string) (*domain.ChartOfAccounts, error) {
	var saved *domain.ChartOfAccounts
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		chart, err := s.chartRepo.FindChartByID(ctx, tenantID, chartID)
		if err != nil {
			return err
		}
		account := domain.Account{
			AccountID:       uuid.NewString(),
			Code:            req.Code,
			Name:            strings.TrimSpace(req.Name),
			AccountType:     req.AccountType,
			CurrencyCode:    req.CurrencyCode,
			ParentAccountID: req.ParentAccountID,
			IsPosting:       req.IsPosting,
		}
		if err := chart.DefineAccount(account); err != nil {
			return err
		}
		chart.Touch(actor, s.Now())
		saved, err = s.chartRepo.SaveChart(ctx, *chart)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to define account",
			slog.String("tenant_id", tenantID),
			slog.String("chart_id", chartID),
			slog.String("code", req.Code))
		return nil, err
	}
	return saved, nil
}

func (s *ledgerService) GetLedger(ctx context.Context, tenantID, ledgerID string) (*domain.Ledger, error) {
	return s.ledgerRepo.FindLedgerByID(ctx, tenantID, ledgerID)
}

func (s *ledgerService) GetChart(ctx context.Context, tenantID, chartID string) (*domain.ChartOfAccounts, error) {
	return s.chartRepo.FindChartByID(ctx, tenantID, chartID)
}
