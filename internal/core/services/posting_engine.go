package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/google/uuid"
)

// postingLine is a candidate line as entered.
type postingLine struct {
	AccountID   string
	Direction   domain.EntryDirection
	AmountMinor int64
	Currency    string // empty means the ledger base currency
	Description string
	Dimensions  domain.DimensionAssignments
}

type postingCommand struct {
	TenantID    string
	LedgerID    string
	PeriodID    string
	Reference   string
	Description string
	BookedAt    time.Time
	Lines       []postingLine
	Actor       string

	// SkipDimensionValidation is set for system-generated entries.
	SkipDimensionValidation bool
}

// postingEngine validates, normalizes and posts an entry. It must run inside a unit of work.
type postingEngine struct {
	ledgerRepo  portsrepo.LedgerReader
	periodRepo  portsrepo.PeriodReader
	chartRepo   portsrepo.ChartReader
	journalRepo portsrepo.JournalWriter
	rates       portssvc.ExchangeRateProvider
	validator   portssvc.DimensionValidator
	publisher   portssvc.EventPublisher
	now         func() time.Time
}

func (e *postingEngine) post(ctx context.Context, cmd postingCommand) (*domain.JournalEntry, error) {
	ledger, err := e.ledgerRepo.FindLedgerByID(ctx, cmd.TenantID, cmd.LedgerID)
	if err != nil {
		return nil, err
	}
	period, err := e.periodRepo.FindPeriodByID(ctx, cmd.TenantID, cmd.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.LedgerID != ledger.LedgerID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("period %s in ledger %s", cmd.PeriodID, cmd.LedgerID))
	}
	if !period.AcceptsPostings() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosed, period.Code, period.Status)
	}

	directions := make([]domain.EntryDirection, len(cmd.Lines))
	for i, l := range cmd.Lines {
		directions[i] = l.Direction
	}
	if err := domain.CheckEntryStructure(directions); err != nil {
		return nil, err
	}

	chart, err := e.chartRepo.FindChartByID(ctx, cmd.TenantID, ledger.ChartOfAccountsID)
	if err != nil {
		return nil, err
	}
	accountTypes := make([]domain.AccountType, len(cmd.Lines))
	for i, l := range cmd.Lines {
		account, ok := chart.Account(l.AccountID)
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s in chart %s", l.AccountID, chart.ChartID))
		}
		if !account.IsPosting {
			return nil, fmt.Errorf("%w: account %s is not a posting account", apperrors.ErrValidation, account.Code)
		}
		accountTypes[i] = account.AccountType
	}

	lines := make([]domain.JournalEntryLine, len(cmd.Lines))
	for i, l := range cmd.Lines {
		line, err := e.normalizeLine(ctx, ledger.BaseCurrency, cmd.BookedAt, l)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = line
	}

	entry, err := domain.NewDraftEntry(domain.DraftEntryParams{
		EntryID:      uuid.NewString(),
		TenantID:     cmd.TenantID,
		LedgerID:     ledger.LedgerID,
		PeriodID:     period.PeriodID,
		BaseCurrency: ledger.BaseCurrency,
		Reference:    cmd.Reference,
		Description:  cmd.Description,
		BookedAt:     cmd.BookedAt,
	}, lines)
	if err != nil {
		return nil, err
	}

	if !cmd.SkipDimensionValidation {
		validationLines := make([]domain.DimensionValidationLine, len(lines))
		for i, l := range lines {
			validationLines[i] = domain.DimensionValidationLine{
				AccountID:   l.AccountID,
				AccountType: accountTypes[i],
				Dimensions:  l.Dimensions,
			}
		}
		if err := e.validator.ValidateAssignments(ctx, cmd.TenantID, cmd.BookedAt, validationLines); err != nil {
			return nil, err
		}
	}

	now := e.now()
	if err := entry.Post(now); err != nil {
		return nil, err
	}
	entry.AuditFields = domain.NewAuditFields(cmd.Actor, now)

	saved, err := e.journalRepo.SaveJournalEntry(ctx, *entry)
	if err != nil {
		return nil, err
	}
	if err := e.publisher.PublishJournalPosted(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// normalizeLine expresses the line in base currency, keeping the entered amount.
func (e *postingEngine) normalizeLine(ctx context.Context, baseCurrency string, bookedAt time.Time, l postingLine) (domain.JournalEntryLine, error) {
	currency := domain.NormalizeCurrency(l.Currency)
	if currency == "" {
		currency = baseCurrency
	}
	original, err := domain.NewMoney(l.AmountMinor, currency)
	if err != nil {
		return domain.JournalEntryLine{}, err
	}

	amount := original
	if original.Currency != baseCurrency {
		rate, err := e.rates.FindRate(ctx, original.Currency, baseCurrency, bookedAt)
		if err != nil {
			return domain.JournalEntryLine{}, err
		}
		if amount, err = rate.Convert(original); err != nil {
			return domain.JournalEntryLine{}, err
		}
	}

	return domain.JournalEntryLine{
		LineID:           uuid.NewString(),
		AccountID:        l.AccountID,
		Direction:        l.Direction,
		Amount:           amount,
		OriginalAmount:   original,
		OriginalCurrency: original.Currency,
		Description:      l.Description,
		Dimensions:       l.Dimensions,
	}, nil
}
