package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// revaluationService books unrealized FX gains and losses on foreign-currency lines.
type revaluationService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	ledgerRepo  portsrepo.LedgerReader
	periodRepo  portsrepo.PeriodReader
	journalRepo portsrepo.JournalReader
	rates       portssvc.ExchangeRateProvider
	engine      *postingEngine
	metrics     portssvc.MetricsSink
}

// NewRevaluationService creates the currency revaluation service.
func NewRevaluationService(
	repos portsrepo.RepositoryProvider,
	rates portssvc.ExchangeRateProvider,
	publisher portssvc.EventPublisher,
	metrics portssvc.MetricsSink,
) portssvc.RevaluationSvcFacade {
	svc := &revaluationService{
		uow:         repos.UnitOfWork,
		ledgerRepo:  repos.LedgerRepo,
		periodRepo:  repos.PeriodRepo,
		journalRepo: repos.JournalRepo,
		rates:       rates,
		metrics:     metrics,
	}
	// Adjustments are system generated and skip dimension validation.
	svc.engine = newPostingEngine(repos, rates, nil, publisher, svc.Now)
	return svc
}

var _ portssvc.RevaluationSvcFacade = (*revaluationService)(nil)

// RevaluationReference is the default reference of an adjustment entry.
func RevaluationReference(ledgerID string, asOf time.Time) string {
	prefix := ledgerID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("FX-REV-%s-%d", prefix, asOf.UnixMilli())
}

func (s *revaluationService) RunRevaluation(ctx context.Context, tenantID string, req dto.RunRevaluationRequest, actor string) (*domain.JournalEntry, error) {
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = RevaluationReference(req.LedgerID, req.AsOf)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = "FX revaluation as of " + req.AsOf.UTC().Format(time.RFC3339)
	}

	var result *domain.JournalEntry
	var posted bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		ledger, err := s.ledgerRepo.FindLedgerByID(ctx, tenantID, req.LedgerID)
		if err != nil {
			return err
		}
		period, err := s.periodRepo.FindPeriodByID(ctx, tenantID, req.PeriodID)
		if err != nil {
			return err
		}
		if period.LedgerID != ledger.LedgerID {
			return apperrors.NewNotFoundError(fmt.Sprintf("period %s in ledger %s", req.PeriodID, ledger.LedgerID))
		}
		entries, err := s.journalRepo.FindPostedByLedgerAndPeriod(ctx, tenantID, ledger.LedgerID, period.PeriodID)
		if err != nil {
			return err
		}
		for i := range entries {
			if entries[i].Reference == reference {
				result = &entries[i]
				return nil
			}
		}

		adjustments := &adjustmentSet{}
		for _, entry := range entries {
			for _, line := range entry.Lines {
				if !line.IsForeign() {
					continue
				}
				if err := s.revalueLine(ctx, ledger.BaseCurrency, req, line, adjustments); err != nil {
					return err
				}
			}
		}
		if adjustments.empty() {
			return nil
		}

		result, err = s.engine.post(ctx, postingCommand{
			TenantID:                tenantID,
			LedgerID:                ledger.LedgerID,
			PeriodID:                req.PeriodID,
			Reference:               reference,
			Description:             description,
			BookedAt:                req.BookedAt,
			Lines:                   adjustments.lines(ledger.BaseCurrency),
			Actor:                   actor,
			SkipDimensionValidation: true,
		})
		posted = err == nil
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Revaluation failed",
			slog.String("tenant_id", tenantID),
			slog.String("ledger_id", req.LedgerID),
			slog.String("period_id", req.PeriodID))
		return nil, err
	}

	if posted {
		s.metrics.RecordRevaluation(ctx)
		s.LogInfo(ctx, "Revaluation posted",
			slog.String("tenant_id", tenantID),
			slog.String("entry_id", result.EntryID),
			slog.String("reference", reference))
	}
	return result, nil
}

// revalueLine converts the entered amount at the as-of rate and books the
// difference to the carried base amount.
func (s *revaluationService) revalueLine(ctx context.Context, baseCurrency string, req dto.RunRevaluationRequest, line domain.JournalEntryLine, adjustments *adjustmentSet) error {
	rate, err := s.rates.FindRate(ctx, line.OriginalCurrency, baseCurrency, req.AsOf)
	if err != nil {
		return err
	}
	revalued, err := rate.Convert(line.OriginalAmount)
	if err != nil {
		return err
	}
	delta, err := revalued.Sub(line.Amount)
	if err != nil {
		return err
	}
	if delta.IsZero() {
		return nil
	}

	exposureSide, offsetAccount, offsetSide := revaluationSides(line.Direction, delta.IsPositive(), req.GainAccountID, req.LossAccountID)
	adjustments.add(line.AccountID, exposureSide, delta.Abs().AmountMinor)
	adjustments.add(offsetAccount, offsetSide, delta.Abs().AmountMinor)
	return nil
}

// revaluationSides maps the exposure direction and delta sign to the adjustment lines.
// A debit-side exposure gains when its base value grows; a credit-side exposure loses.
func revaluationSides(exposure domain.EntryDirection, positive bool, gainAccountID, lossAccountID string) (domain.EntryDirection, string, domain.EntryDirection) {
	switch {
	case exposure == domain.Debit && positive:
		return domain.Debit, gainAccountID, domain.Credit
	case exposure == domain.Debit:
		return domain.Credit, lossAccountID, domain.Debit
	case positive:
		return domain.Credit, lossAccountID, domain.Debit
	default:
		return domain.Debit, gainAccountID, domain.Credit
	}
}

type adjustmentKey struct {
	accountID string
	direction domain.EntryDirection
}

// adjustmentSet sums adjustments per (account, direction) in first-seen order.
type adjustmentSet struct {
	order   []adjustmentKey
	amounts map[adjustmentKey]int64
}

func (a *adjustmentSet) add(accountID string, direction domain.EntryDirection, amountMinor int64) {
	if a.amounts == nil {
		a.amounts = make(map[adjustmentKey]int64)
	}
	key := adjustmentKey{accountID: accountID, direction: direction}
	if _, ok := a.amounts[key]; !ok {
		a.order = append(a.order, key)
	}
	a.amounts[key] += amountMinor
}

func (a *adjustmentSet) empty() bool { return len(a.order) == 0 }

func (a *adjustmentSet) lines(baseCurrency string) []postingLine {
	out := make([]postingLine, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, postingLine{
			AccountID:   key.accountID,
			Direction:   key.direction,
			AmountMinor: a.amounts[key],
			Currency:    baseCurrency,
			Description: "FX revaluation",
		})
	}
	return out
}
