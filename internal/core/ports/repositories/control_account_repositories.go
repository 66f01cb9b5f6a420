package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ControlAccountReader defines read operations for control-account configuration.
type ControlAccountReader interface {
	// FindControlAccount matches the key exactly; no fallback is applied here.
	// It returns apperrors.ErrNotFound when no row exists.
	FindControlAccount(ctx context.Context, key domain.ControlAccountKey) (*domain.ControlAccountConfig, error)
}

// ControlAccountWriter defines write operations for control-account configuration.
type ControlAccountWriter interface {
	// SaveControlAccount upserts by key.
	SaveControlAccount(ctx context.Context, config domain.ControlAccountConfig) (*domain.ControlAccountConfig, error)
}

// ControlAccountRepositoryFacade combines all control-account repository interfaces.
type ControlAccountRepositoryFacade interface {
	ControlAccountReader
	ControlAccountWriter
}
