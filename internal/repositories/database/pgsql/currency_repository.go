package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by`

// SaveCurrency inserts a currency or refreshes its display fields.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency_code) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			precision = EXCLUDED.precision,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.db(ctx).Exec(ctx, query,
		modelCurr.CurrencyCode,
		modelCurr.Symbol,
		modelCurr.Name,
		modelCurr.Precision,
		modelCurr.CreatedAt,
		modelCurr.CreatedBy,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "currency "+modelCurr.CurrencyCode)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`

	rows, err := r.db(ctx).Query(ctx, query, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}
	modelCurr, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency " + currencyCode)
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`

	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	modelCurrencies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate upserts the rate for (base, quote, as_of).
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, base_currency, quote_currency, rate, as_of,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (base_currency, quote_currency, as_of) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ExchangeRateID, m.BaseCurrency, m.QuoteCurrency, m.Rate, m.AsOf,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("exchange rate %s/%s", m.BaseCurrency, m.QuoteCurrency))
	}
	return nil
}

// FindLatestRate returns the newest rate for the exact pair effective at or before asOf.
func (r *PgxExchangeRateRepository) FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT exchange_rate_id, base_currency, quote_currency, rate, as_of,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE base_currency = $1 AND quote_currency = $2 AND as_of <= $3
		ORDER BY as_of DESC
		LIMIT 1;
	`
	rows, err := r.db(ctx).Query(ctx, query, baseCurrency, quoteCurrency, asOf.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rate %s/%s: %w", baseCurrency, quoteCurrency, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("exchange rate %s/%s", baseCurrency, quoteCurrency))
		}
		return nil, fmt.Errorf("failed to scan exchange rate %s/%s: %w", baseCurrency, quoteCurrency, err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}
