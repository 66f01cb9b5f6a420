package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperrors.ErrDuplicate},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, apperrors.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, apperrors.ErrConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapWriteError(tt.err, "period P1"), tt.want)
		})
	}

	raw := errors.New("connection reset")
	err := mapWriteError(raw, "period P1")
	assert.ErrorIs(t, err, raw)
	assert.EqualError(t, err, "failed to save period P1: connection reset")
}

func TestOrderParentsFirst(t *testing.T) {
	ptr := func(s string) *string { return &s }
	accounts := []models.Account{
		{AccountID: "cash", ParentAccountID: ptr("current")},
		{AccountID: "current", ParentAccountID: ptr("assets")},
		{AccountID: "assets"},
		{AccountID: "orphan", ParentAccountID: ptr("elsewhere")},
	}

	ordered := orderParentsFirst(accounts)

	ids := make([]string, len(ordered))
	for i, a := range ordered {
		ids[i] = a.AccountID
	}
	assert.Equal(t, []string{"assets", "current", "cash", "orphan"}, ids)
}
