package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const (
	journalColumns = `entry_id, tenant_id, ledger_id, period_id, status, reference, description, booked_at, posted_at, version,
	created_at, created_by, last_updated_at, last_updated_by`
	journalLineColumns = `line_id, entry_id, line_no, account_id, direction, amount_minor, currency,
	original_amount_minor, original_currency, description,
	cost_center_id, profit_center_id, department_id, project_id, business_area_id`
)

// SaveJournalEntry writes the header and all lines in a single batch. Posted entries are immutable,
// so a second save of the same id fails as a duplicate.
func (r *PgxJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	header, lines := mapping.ToModelJournalEntry(entry)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11, $12, $13);`,
		header.EntryID, header.TenantID, header.LedgerID, header.PeriodID, header.Status,
		header.Reference, header.Description, header.BookedAt, header.PostedAt,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO journal_lines (`+journalLineColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
			l.LineID, l.EntryID, l.LineNo, l.AccountID, l.Direction, l.AmountMinor, l.Currency,
			l.OriginalAmountMinor, l.OriginalCurrency, l.Description,
			l.CostCenterID, l.ProfitCenterID, l.DepartmentID, l.ProjectID, l.BusinessAreaID,
		)
	}

	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return nil, mapWriteError(err, "journal entry "+header.EntryID)
	}

	entry.Version = 1
	return &entry, nil
}

func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	db := r.db(ctx)

	rows, err := db.Query(ctx,
		`SELECT `+journalColumns+` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`,
		tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry %s: %w", entryID, err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		return nil, fmt.Errorf("failed to scan journal entry %s: %w", entryID, err)
	}

	linesByEntry, err := r.findLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(header, linesByEntry[entryID])
	return &entry, nil
}

// FindPostedByLedgerAndPeriod loads headers, then every line of those entries in one query.
func (r *PgxJournalRepository) FindPostedByLedgerAndPeriod(ctx context.Context, tenantID, ledgerID, periodID string) ([]domain.JournalEntry, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+journalColumns+` FROM journal_entries
		WHERE tenant_id = $1 AND ledger_id = $2 AND period_id = $3 AND status = $4
		ORDER BY booked_at, created_at;`,
		tenantID, ledgerID, periodID, string(domain.JournalPosted))
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries of period %s: %w", periodID, err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries of period %s: %w", periodID, err)
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	linesByEntry, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, linesByEntry[h.EntryID])
	}
	return entries, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+journalLineColumns+` FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;`, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal lines: %w", err)
	}

	byEntry := make(map[string][]models.JournalLine, len(entryIDs))
	for _, l := range lines {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}
	return byEntry, nil
}
