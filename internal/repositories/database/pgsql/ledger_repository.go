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

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `ledger_id, tenant_id, chart_id, base_currency, status, version,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveLedger inserts a new ledger (Version 0) or updates an existing one guarded by Version.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) (*domain.Ledger, error) {
	m := mapping.ToModelLedger(ledger)

	if m.Version == 0 {
		_, err := r.db(ctx).Exec(ctx, `
			INSERT INTO ledgers (`+ledgerColumns+`)
			VALUES ($1, $2, $3, $4, $5, 1, $6, $7, $8, $9);`,
			m.LedgerID, m.TenantID, m.ChartOfAccountsID, m.BaseCurrency, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return nil, mapWriteError(err, "ledger "+m.LedgerID)
		}
	} else {
		ct, err := r.db(ctx).Exec(ctx, `
			UPDATE ledgers SET status = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE tenant_id = $4 AND ledger_id = $5 AND version = $6;`,
			m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.TenantID, m.LedgerID, m.Version,
		)
		if err != nil {
			return nil, mapWriteError(err, "ledger "+m.LedgerID)
		}
		if ct.RowsAffected() == 0 {
			return nil, staleVersion("ledger "+m.LedgerID, m.Version)
		}
	}

	ledger.Version = m.Version + 1
	return &ledger, nil
}

// FindLedgerByID retrieves a ledger scoped to the tenant.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, tenantID, ledgerID string) (*domain.Ledger, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+ledgerColumns+` FROM ledgers WHERE tenant_id = $1 AND ledger_id = $2;`,
		tenantID, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger %s: %w", ledgerID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Ledger])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("ledger " + ledgerID)
		}
		return nil, fmt.Errorf("failed to scan ledger %s: %w", ledgerID, err)
	}
	ledger := mapping.ToDomainLedger(m)
	return &ledger, nil
}

type PgxChartRepository struct {
	BaseRepository
}

func newPgxChartRepository(pool *pgxpool.Pool) portsrepo.ChartRepositoryFacade {
	return &PgxChartRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChartRepositoryFacade = (*PgxChartRepository)(nil)

const (
	chartColumns = `chart_id, tenant_id, code, name, base_currency, version,
	created_at, created_by, last_updated_at, last_updated_by`
	accountColumns = `account_id, chart_id, code, name, account_type, currency_code, parent_account_id, is_posting`
)

// SaveChart writes the chart header guarded by Version, then upserts every account in one batch.
func (r *PgxChartRepository) SaveChart(ctx context.Context, chart domain.ChartOfAccounts) (*domain.ChartOfAccounts, error) {
	header, accounts := mapping.ToModelChart(chart)
	db := r.db(ctx)

	if header.Version == 0 {
		_, err := db.Exec(ctx, `
			INSERT INTO chart_of_accounts (`+chartColumns+`)
			VALUES ($1, $2, $3, $4, $5, 1, $6, $7, $8, $9);`,
			header.ChartID, header.TenantID, header.Code, header.Name, header.BaseCurrency,
			header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
		)
		if err != nil {
			return nil, mapWriteError(err, "chart "+header.ChartID)
		}
	} else {
		ct, err := db.Exec(ctx, `
			UPDATE chart_of_accounts SET name = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE tenant_id = $4 AND chart_id = $5 AND version = $6;`,
			header.Name, header.LastUpdatedAt, header.LastUpdatedBy, header.TenantID, header.ChartID, header.Version,
		)
		if err != nil {
			return nil, mapWriteError(err, "chart "+header.ChartID)
		}
		if ct.RowsAffected() == 0 {
			return nil, staleVersion("chart "+header.ChartID, header.Version)
		}
	}

	if len(accounts) > 0 {
		// Parents first so the self-referencing foreign key is satisfied.
		batch := &pgx.Batch{}
		for _, a := range orderParentsFirst(accounts) {
			batch.Queue(`
				INSERT INTO accounts (`+accountColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (account_id) DO UPDATE SET
					name = EXCLUDED.name,
					parent_account_id = EXCLUDED.parent_account_id,
					is_posting = EXCLUDED.is_posting;`,
				a.AccountID, a.ChartID, a.Code, a.Name, a.AccountType, a.CurrencyCode, a.ParentAccountID, a.IsPosting,
			)
		}
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return nil, mapWriteError(err, "accounts of chart "+header.ChartID)
		}
	}

	chart.Version = header.Version + 1
	return &chart, nil
}

// FindChartByID loads the chart header and all of its accounts.
func (r *PgxChartRepository) FindChartByID(ctx context.Context, tenantID, chartID string) (*domain.ChartOfAccounts, error) {
	db := r.db(ctx)

	rows, err := db.Query(ctx,
		`SELECT `+chartColumns+` FROM chart_of_accounts WHERE tenant_id = $1 AND chart_id = $2;`,
		tenantID, chartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chart %s: %w", chartID, err)
	}
	header, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ChartOfAccounts])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("chart of accounts " + chartID)
		}
		return nil, fmt.Errorf("failed to scan chart %s: %w", chartID, err)
	}

	rows, err = db.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE chart_id = $1 ORDER BY code;`, chartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts of chart %s: %w", chartID, err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts of chart %s: %w", chartID, err)
	}

	chart := mapping.ToDomainChart(header, accounts)
	return &chart, nil
}

// orderParentsFirst sorts accounts so every parent precedes its children.
func orderParentsFirst(accounts []models.Account) []models.Account {
	byID := make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	ordered := make([]models.Account, 0, len(accounts))
	seen := make(map[string]bool, len(accounts))
	var visit func(a models.Account)
	visit = func(a models.Account) {
		if seen[a.AccountID] {
			return
		}
		seen[a.AccountID] = true
		if a.ParentAccountID != nil {
			if parent, ok := byID[*a.ParentAccountID]; ok {
				visit(parent)
			}
		}
		ordered = append(ordered, a)
	}
	for _, a := range accounts {
		visit(a)
	}
	return ordered
}
