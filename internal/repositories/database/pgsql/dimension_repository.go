package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDimensionRepository struct {
	BaseRepository
}

func newPgxDimensionRepository(pool *pgxpool.Pool) portsrepo.DimensionRepositoryFacade {
	return &PgxDimensionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DimensionRepositoryFacade = (*PgxDimensionRepository)(nil)

const dimensionColumns = `dimension_id, tenant_id, company_code_id, dimension_type, code, name, description,
	parent_id, status, valid_from, valid_to, version,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxDimensionRepository) SaveDimension(ctx context.Context, dimension domain.AccountingDimension) (*domain.AccountingDimension, error) {
	m := mapping.ToModelDimension(dimension)

	if m.Version == 0 {
		_, err := r.db(ctx).Exec(ctx, `
			INSERT INTO accounting_dimensions (`+dimensionColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13, $14, $15);`,
			m.DimensionID, m.TenantID, m.CompanyCodeID, m.Type, m.Code, m.Name, m.Description,
			m.ParentID, m.Status, m.ValidFrom, m.ValidTo,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return nil, mapWriteError(err, fmt.Sprintf("%s dimension %s", m.Type, m.Code))
		}
	} else {
		ct, err := r.db(ctx).Exec(ctx, `
			UPDATE accounting_dimensions SET
				company_code_id = $1, code = $2, name = $3, description = $4, parent_id = $5,
				status = $6, valid_from = $7, valid_to = $8,
				version = version + 1, last_updated_at = $9, last_updated_by = $10
			WHERE tenant_id = $11 AND dimension_id = $12 AND version = $13;`,
			m.CompanyCodeID, m.Code, m.Name, m.Description, m.ParentID,
			m.Status, m.ValidFrom, m.ValidTo,
			m.LastUpdatedAt, m.LastUpdatedBy,
			m.TenantID, m.DimensionID, m.Version,
		)
		if err != nil {
			return nil, mapWriteError(err, "dimension "+m.DimensionID)
		}
		if ct.RowsAffected() == 0 {
			return nil, staleVersion("dimension "+m.DimensionID, m.Version)
		}
	}

	dimension.Version = m.Version + 1
	return &dimension, nil
}

func (r *PgxDimensionRepository) FindDimensionByID(ctx context.Context, tenantID, dimensionID string) (*domain.AccountingDimension, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+dimensionColumns+` FROM accounting_dimensions WHERE tenant_id = $1 AND dimension_id = $2;`,
		tenantID, dimensionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimension %s: %w", dimensionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountingDimension])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("dimension " + dimensionID)
		}
		return nil, fmt.Errorf("failed to scan dimension %s: %w", dimensionID, err)
	}
	d := mapping.ToDomainDimension(m)
	return &d, nil
}

// FindDimensionsByIDs resolves a set of ids of one type in a single query.
func (r *PgxDimensionRepository) FindDimensionsByIDs(ctx context.Context, tenantID string, dimensionType domain.DimensionType, ids []string) (map[string]domain.AccountingDimension, error) {
	found := make(map[string]domain.AccountingDimension, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+dimensionColumns+` FROM accounting_dimensions
		WHERE tenant_id = $1 AND dimension_type = $2 AND dimension_id = ANY($3);`,
		tenantID, string(dimensionType), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s dimensions: %w", dimensionType, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountingDimension])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s dimensions: %w", dimensionType, err)
	}
	for _, m := range ms {
		found[m.DimensionID] = mapping.ToDomainDimension(m)
	}
	return found, nil
}

func (r *PgxDimensionRepository) ListDimensions(ctx context.Context, tenantID string, filter portsrepo.DimensionFilter) ([]domain.AccountingDimension, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + dimensionColumns + ` FROM accounting_dimensions WHERE tenant_id = $1`)
	args := []any{tenantID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		fmt.Fprintf(&sb, " AND dimension_type = $%d", len(args))
	}
	if filter.CompanyCodeID != "" {
		args = append(args, filter.CompanyCodeID)
		fmt.Fprintf(&sb, " AND company_code_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	sb.WriteString(" ORDER BY dimension_type, code;")

	rows, err := r.db(ctx).Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimensions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountingDimension])
	if err != nil {
		return nil, fmt.Errorf("failed to scan dimensions: %w", err)
	}
	return mapping.ToDomainDimensionSlice(ms), nil
}

type PgxPolicyRepository struct {
	BaseRepository
}

func newPgxPolicyRepository(pool *pgxpool.Pool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

func (r *PgxPolicyRepository) FindPoliciesByTenant(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT policy_id, tenant_id, account_type, dimension_type, requirement
		FROM account_dimension_policies
		WHERE tenant_id = $1
		ORDER BY account_type, dimension_type;`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimension policies: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountDimensionPolicy])
	if err != nil {
		return nil, fmt.Errorf("failed to scan dimension policies: %w", err)
	}
	policies := make([]domain.AccountDimensionPolicy, len(ms))
	for i, m := range ms {
		policies[i] = mapping.ToDomainPolicy(m)
	}
	return policies, nil
}

// SavePolicies inserts policies, leaving any existing (tenant, account type, dimension type) cell untouched.
// Concurrent default seeding therefore converges on a single row per cell.
func (r *PgxPolicyRepository) SavePolicies(ctx context.Context, policies []domain.AccountDimensionPolicy) error {
	if len(policies) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range policies {
		m := mapping.ToModelPolicy(p)
		batch.Queue(`
			INSERT INTO account_dimension_policies (policy_id, tenant_id, account_type, dimension_type, requirement)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (tenant_id, account_type, dimension_type) DO NOTHING;`,
			m.PolicyID, m.TenantID, m.AccountType, m.DimensionType, m.Requirement,
		)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "dimension policies")
	}
	return nil
}

func (r *PgxPolicyRepository) DeletePolicy(ctx context.Context, tenantID string, dimensionType domain.DimensionType, accountType domain.AccountType) error {
	_, err := r.db(ctx).Exec(ctx, `
		DELETE FROM account_dimension_policies
		WHERE tenant_id = $1 AND dimension_type = $2 AND account_type = $3;`,
		tenantID, string(dimensionType), string(accountType))
	if err != nil {
		return fmt.Errorf("failed to delete dimension policy %s/%s: %w", accountType, dimensionType, err)
	}
	return nil
}
