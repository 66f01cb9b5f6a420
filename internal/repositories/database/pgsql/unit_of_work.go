package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs commands in a REPEATABLE READ transaction.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// WithinTx begins a transaction, binds it to the context handed to fn and
// commits when fn succeeds. A nested call joins the outer transaction.
func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := u.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
			return fmt.Errorf("%w: commit: %s", apperrors.ErrConflict, pgErr.Message)
		}
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
