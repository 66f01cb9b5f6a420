package repositories

import (
	"context"
)

// UnitOfWork runs fn inside one logical transaction. Stores called with the
// context passed to fn take part in that transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
