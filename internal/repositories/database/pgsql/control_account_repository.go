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

type PgxControlAccountRepository struct {
	BaseRepository
}

func newPgxControlAccountRepository(pool *pgxpool.Pool) portsrepo.ControlAccountRepositoryFacade {
	return &PgxControlAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ControlAccountRepositoryFacade = (*PgxControlAccountRepository)(nil)

const controlAccountColumns = `config_id, tenant_id, company_code_id, sub_ledger, category, dimension_key, currency, gl_account_id,
	created_at, created_by, last_updated_at, last_updated_by`

// FindControlAccount matches the full key exactly.
func (r *PgxControlAccountRepository) FindControlAccount(ctx context.Context, key domain.ControlAccountKey) (*domain.ControlAccountConfig, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+controlAccountColumns+` FROM control_account_configs
		WHERE tenant_id = $1 AND company_code_id = $2 AND sub_ledger = $3 AND category = $4
			AND dimension_key = $5 AND currency = $6;`,
		key.TenantID, key.CompanyCodeID, string(key.SubLedger), string(key.Category), key.DimensionKey, key.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to query control account: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ControlAccountConfig])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("control account %s/%s/%s/%s",
				key.SubLedger, key.Category, key.DimensionKey, key.Currency))
		}
		return nil, fmt.Errorf("failed to scan control account: %w", err)
	}
	config := mapping.ToDomainControlAccount(m)
	return &config, nil
}

// SaveControlAccount upserts by key and returns the stored row.
func (r *PgxControlAccountRepository) SaveControlAccount(ctx context.Context, config domain.ControlAccountConfig) (*domain.ControlAccountConfig, error) {
	m := mapping.ToModelControlAccount(config)

	rows, err := r.db(ctx).Query(ctx, `
		INSERT INTO control_account_configs (`+controlAccountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (tenant_id, company_code_id, sub_ledger, category, dimension_key, currency) DO UPDATE SET
			gl_account_id = EXCLUDED.gl_account_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING `+controlAccountColumns+`;`,
		m.ConfigID, m.TenantID, m.CompanyCodeID, m.SubLedger, m.Category, m.DimensionKey, m.Currency, m.GLAccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapWriteError(err, "control account")
	}
	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ControlAccountConfig])
	if err != nil {
		return nil, mapWriteError(err, "control account")
	}
	out := mapping.ToDomainControlAccount(saved)
	return &out, nil
}
