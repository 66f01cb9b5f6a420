package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// EventPublisher notifies downstream contexts about committed ledger facts.
type EventPublisher interface {
	PublishJournalPosted(ctx context.Context, entry *domain.JournalEntry) error
	PublishPeriodUpdated(ctx context.Context, period *domain.AccountingPeriod, previous domain.PeriodStatus) error
	PublishDimensionChanged(ctx context.Context, dimension *domain.AccountingDimension, action domain.DimensionAction) error
}

// MetricsSink records operational counters.
type MetricsSink interface {
	RecordDimensionValidationFailure(ctx context.Context, reason domain.DimensionFailureReason, dimensionType domain.DimensionType, accountType domain.AccountType)
	RecordOrphanLine(ctx context.Context, accountType domain.AccountType)
	RecordJournalPosted(ctx context.Context, lines int)
	RecordPeriodTransition(ctx context.Context, status domain.PeriodStatus)
	RecordRevaluation(ctx context.Context)
}

// Locker serializes work on a key across processes.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
