package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// journalService posts journal entries through the posting engine.
type journalService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	journalRepo portsrepo.JournalReader
	engine      *postingEngine
	metrics     portssvc.MetricsSink
}

// NewJournalService creates the journal posting service.
func NewJournalService(
	repos portsrepo.RepositoryProvider,
	rates portssvc.ExchangeRateProvider,
	validator portssvc.DimensionValidator,
	publisher portssvc.EventPublisher,
	metrics portssvc.MetricsSink,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		uow:         repos.UnitOfWork,
		journalRepo: repos.JournalRepo,
		metrics:     metrics,
	}
	svc.engine = newPostingEngine(repos, rates, validator, publisher, svc.Now)
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func newPostingEngine(
	repos portsrepo.RepositoryProvider,
	rates portssvc.ExchangeRateProvider,
	validator portssvc.DimensionValidator,
	publisher portssvc.EventPublisher,
	now func() time.Time,
) *postingEngine {
	return &postingEngine{
		ledgerRepo:  repos.LedgerRepo,
		periodRepo:  repos.PeriodRepo,
		chartRepo:   repos.ChartRepo,
		journalRepo: repos.JournalRepo,
		rates:       rates,
		validator:   validator,
		publisher:   publisher,
		now:         now,
	}
}

func (s *journalService) PostJournalEntry(ctx context.Context, tenantID string, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	cmd := postingCommand{
		TenantID:    tenantID,
		LedgerID:    req.LedgerID,
		PeriodID:    req.PeriodID,
		Reference:   req.Reference,
		Description: req.Description,
		BookedAt:    req.BookedAt,
		Actor:       actor,
		Lines:       make([]postingLine, len(req.Lines)),
	}
	for i, l := range req.Lines {
		cmd.Lines[i] = postingLine{
			AccountID:   l.AccountID,
			Direction:   domain.EntryDirection(l.Direction),
			AmountMinor: l.AmountMinor,
			Currency:    l.Currency,
			Description: l.Description,
			Dimensions:  l.Dimensions,
		}
	}

	var posted *domain.JournalEntry
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		posted, err = s.engine.post(ctx, cmd)
		return err
	})
	if err != nil {
		s.LogWarn(ctx, err, "Journal entry rejected",
			slog.String("tenant_id", tenantID),
			slog.String("ledger_id", req.LedgerID),
			slog.String("period_id", req.PeriodID))
		return nil, err
	}

	s.metrics.RecordJournalPosted(ctx, len(posted.Lines))
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("tenant_id", tenantID),
		slog.String("entry_id", posted.EntryID),
		slog.Int("lines", len(posted.Lines)))
	return posted, nil
}

func (s *journalService) GetJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindJournalEntryByID(ctx, tenantID, entryID)
}
