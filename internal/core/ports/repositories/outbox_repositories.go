package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// OutboxRepositoryFacade stores events until the relay has delivered them.
type OutboxRepositoryFacade interface {
	SaveOutboxEvent(ctx context.Context, event domain.OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, eventID string, publishedAt time.Time) error
	// MarkFailed records a delivery failure; the event becomes FAILED once attempts reach maxAttempts.
	MarkFailed(ctx context.Context, eventID string, errMsg string, maxAttempts int) error
	CountPending(ctx context.Context) (int64, error)
	DeletePublishedBefore(ctx context.Context, before time.Time) (int64, error)
}
