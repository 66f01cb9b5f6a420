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

// periodService drives the OPEN -> FROZEN -> CLOSED lifecycle.
type periodService struct {
	BaseService
	uow        portsrepo.UnitOfWork
	ledgerRepo portsrepo.LedgerReader
	periodRepo portsrepo.PeriodRepositoryFacade
	publisher  portssvc.EventPublisher
	metrics    portssvc.MetricsSink
}

// NewPeriodService creates the period lifecycle service.
func NewPeriodService(
	uow portsrepo.UnitOfWork,
	ledgerRepo portsrepo.LedgerReader,
	periodRepo portsrepo.PeriodRepositoryFacade,
	publisher portssvc.EventPublisher,
	metrics portssvc.MetricsSink,
) portssvc.PeriodSvcFacade {
	return &periodService{
		uow:        uow,
		ledgerRepo: ledgerRepo,
		periodRepo: periodRepo,
		publisher:  publisher,
		metrics:    metrics,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) OpenPeriod(ctx context.Context, tenantID, ledgerID string, req dto.OpenPeriodRequest, actor string) (*domain.AccountingPeriod, error) {
	period, err := domain.NewAccountingPeriod(uuid.NewString(), ledgerID, tenantID, req.Code, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	period.AuditFields = domain.NewAuditFields(actor, s.Now())

	var saved *domain.AccountingPeriod
	err = s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.ledgerRepo.FindLedgerByID(ctx, tenantID, ledgerID); err != nil {
			return err
		}
		existing, err := s.periodRepo.ListPeriodsByLedger(ctx, tenantID, ledgerID)
		if err != nil {
			return err
		}
		for _, other := range existing {
			if period.Overlaps(other) {
				return fmt.Errorf("%w: period %s overlaps %s", apperrors.ErrValidation, period.Code, other.Code)
			}
		}
		saved, err = s.periodRepo.SavePeriod(ctx, *period)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Failed to open period",
			slog.String("tenant_id", tenantID),
			slog.String("ledger_id", ledgerID),
			slog.String("code", req.Code))
		return nil, err
	}
	return saved, nil
}

func (s *periodService) ClosePeriod(ctx context.Context, tenantID, ledgerID, periodID string, freezeOnly bool, actor string) (*domain.AccountingPeriod, error) {
	return s.transition(ctx, tenantID, ledgerID, periodID, actor, func(p *domain.AccountingPeriod) (domain.PeriodStatus, bool, error) {
		previous, changed := p.Close(freezeOnly)
		return previous, changed, nil
	})
}

func (s *periodService) ReopenPeriod(ctx context.Context, tenantID, ledgerID, periodID string, actor string) (*domain.AccountingPeriod, error) {
	return s.transition(ctx, tenantID, ledgerID, periodID, actor, func(p *domain.AccountingPeriod) (domain.PeriodStatus, bool, error) {
		return p.Reopen()
	})
}

// transition loads the period, applies move and, only when the status changed,
// persists it and publishes the period-updated event.
func (s *periodService) transition(
	ctx context.Context,
	tenantID, ledgerID, periodID, actor string,
	move func(*domain.AccountingPeriod) (domain.PeriodStatus, bool, error),
) (*domain.AccountingPeriod, error) {
	var result *domain.AccountingPeriod
	var changed bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		period, err := s.findLedgerPeriod(ctx, tenantID, ledgerID, periodID)
		if err != nil {
			return err
		}

		previous, moved, err := move(period)
		if err != nil {
			return err
		}
		if !moved {
			result = period
			return nil
		}

		period.Touch(actor, s.Now())
		saved, err := s.periodRepo.SavePeriod(ctx, *period)
		if err != nil {
			return err
		}
		if err := s.publisher.PublishPeriodUpdated(ctx, saved, previous); err != nil {
			return err
		}
		result, changed = saved, true
		return nil
	})
	if err != nil {
		s.LogWarn(ctx, err, "Period transition rejected",
			slog.String("tenant_id", tenantID),
			slog.String("period_id", periodID))
		return nil, err
	}

	if changed {
		s.metrics.RecordPeriodTransition(ctx, result.Status)
		s.LogInfo(ctx, "Period status changed",
			slog.String("tenant_id", tenantID),
			slog.String("period_id", periodID),
			slog.String("status", string(result.Status)))
	}
	return result, nil
}

func (s *periodService) findLedgerPeriod(ctx context.Context, tenantID, ledgerID, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
	if err != nil {
		return nil, err
	}
	if period.LedgerID != ledgerID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("period %s in ledger %s", periodID, ledgerID))
	}
	return period, nil
}

func (s *periodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
}

func (s *periodService) ListOpenPeriods(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.FindOpenPeriodsByLedger(ctx, tenantID, ledgerID)
	if err != nil {
		return nil, err
	}
	if periods == nil {
		return []domain.AccountingPeriod{}, nil
	}
	return periods, nil
}
