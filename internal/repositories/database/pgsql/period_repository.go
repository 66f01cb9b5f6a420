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

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, ledger_id, tenant_id, code, start_date, end_date, status, version,
	created_at, created_by, last_updated_at, last_updated_by`

// SavePeriod inserts a new period or moves an existing one to its new status.
// Updates only succeed against the version the caller read.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) (*domain.AccountingPeriod, error) {
	m := mapping.ToModelPeriod(period)

	if m.Version == 0 {
		_, err := r.db(ctx).Exec(ctx, `
			INSERT INTO accounting_periods (`+periodColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9, $10, $11);`,
			m.PeriodID, m.LedgerID, m.TenantID, m.Code, m.StartDate, m.EndDate, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return nil, mapWriteError(err, "period "+m.Code)
		}
	} else {
		ct, err := r.db(ctx).Exec(ctx, `
			UPDATE accounting_periods
			SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE tenant_id = $4 AND period_id = $5 AND version = $6;`,
			m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.TenantID, m.PeriodID, m.Version,
		)
		if err != nil {
			return nil, mapWriteError(err, "period "+m.PeriodID)
		}
		if ct.RowsAffected() == 0 {
			return nil, staleVersion("period "+m.PeriodID, m.Version)
		}
	}

	period.Version = m.Version + 1
	return &period, nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+periodColumns+` FROM accounting_periods WHERE tenant_id = $1 AND period_id = $2;`,
		tenantID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query period %s: %w", periodID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("period " + periodID)
		}
		return nil, fmt.Errorf("failed to scan period %s: %w", periodID, err)
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

func (r *PgxPeriodRepository) ListPeriodsByLedger(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error) {
	return r.listPeriods(ctx, `
		SELECT `+periodColumns+` FROM accounting_periods
		WHERE tenant_id = $1 AND ledger_id = $2
		ORDER BY start_date;`, tenantID, ledgerID)
}

func (r *PgxPeriodRepository) FindOpenPeriodsByLedger(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error) {
	return r.listPeriods(ctx, `
		SELECT `+periodColumns+` FROM accounting_periods
		WHERE tenant_id = $1 AND ledger_id = $2 AND status = $3
		ORDER BY start_date;`, tenantID, ledgerID, string(domain.PeriodOpen))
}

func (r *PgxPeriodRepository) listPeriods(ctx context.Context, query string, args ...any) ([]domain.AccountingPeriod, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to scan periods: %w", err)
	}
	return mapping.ToDomainPeriodSlice(ms), nil
}
