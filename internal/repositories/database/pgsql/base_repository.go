package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txKey struct{}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// db returns the transaction bound to ctx by the unit of work, or the pool.
func (r *BaseRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// mapWriteError translates PostgreSQL failures into the apperrors taxonomy.
func mapWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s: %s", apperrors.ErrConflict, what, pgErr.Message)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s references a missing row", apperrors.ErrValidation, what)
		}
	}
	return fmt.Errorf("failed to save %s: %w", what, err)
}

// staleVersion is returned when a version-guarded update touched no row.
func staleVersion(what string, version int64) error {
	return apperrors.NewConflictError(fmt.Sprintf("%s was modified concurrently (expected version %d)", what, version))
}
