package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOutboxRepository struct {
	BaseRepository
}

func newPgxOutboxRepository(pool *pgxpool.Pool) portsrepo.OutboxRepositoryFacade {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OutboxRepositoryFacade = (*PgxOutboxRepository)(nil)

const outboxColumns = `event_id, tenant_id, aggregate_id, event_type, routing_key, payload, status, attempts, last_error, created_at, published_at`

// SaveOutboxEvent stores the event in the caller's transaction.
func (r *PgxOutboxRepository) SaveOutboxEvent(ctx context.Context, event domain.OutboxEvent) error {
	m := mapping.ToModelOutboxEvent(event)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO outbox_events (`+outboxColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.EventID, m.TenantID, m.AggregateID, m.EventType, m.RoutingKey, m.Payload,
		m.Status, m.Attempts, m.LastError, m.CreatedAt, m.PublishedAt,
	)
	if err != nil {
		return mapWriteError(err, "outbox event "+m.EventType)
	}
	return nil
}

// FetchPending returns the oldest PENDING events. Rows locked by another relay are skipped.
func (r *PgxOutboxRepository) FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+outboxColumns+` FROM outbox_events
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED;`, string(domain.OutboxPending), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending outbox events: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OutboxEvent])
	if err != nil {
		return nil, fmt.Errorf("failed to scan pending outbox events: %w", err)
	}
	events := make([]domain.OutboxEvent, len(ms))
	for i, m := range ms {
		events[i] = mapping.ToDomainOutboxEvent(m)
	}
	return events, nil
}

func (r *PgxOutboxRepository) MarkPublished(ctx context.Context, eventID string, publishedAt time.Time) error {
	_, err := r.db(ctx).Exec(ctx, `
		UPDATE outbox_events SET status = $1, published_at = $2, last_error = NULL
		WHERE event_id = $3;`, string(domain.OutboxPublished), publishedAt.UTC(), eventID)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s published: %w", eventID, err)
	}
	return nil
}

// MarkFailed counts the attempt; the event leaves PENDING once attempts reach maxAttempts.
func (r *PgxOutboxRepository) MarkFailed(ctx context.Context, eventID string, errMsg string, maxAttempts int) error {
	_, err := r.db(ctx).Exec(ctx, `
		UPDATE outbox_events SET
			status = CASE WHEN attempts + 1 >= $1 THEN $2 ELSE status END,
			attempts = attempts + 1,
			last_error = $3
		WHERE event_id = $4;`,
		maxAttempts, string(domain.OutboxFailed), errMsg, eventID)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s failed: %w", eventID, err)
	}
	return nil
}

func (r *PgxOutboxRepository) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx).QueryRow(ctx, `SELECT count(*) FROM outbox_events WHERE status = $1;`,
		string(domain.OutboxPending)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending outbox events: %w", err)
	}
	return n, nil
}

func (r *PgxOutboxRepository) DeletePublishedBefore(ctx context.Context, before time.Time) (int64, error) {
	ct, err := r.db(ctx).Exec(ctx, `
		DELETE FROM outbox_events WHERE status = $1 AND published_at < $2;`,
		string(domain.OutboxPublished), before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge published outbox events: %w", err)
	}
	return ct.RowsAffected(), nil
}
