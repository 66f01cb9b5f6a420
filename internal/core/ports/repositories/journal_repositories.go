package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	FindJournalEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)

	// FindPostedByLedgerAndPeriod returns the POSTED entries of a period with their lines.
	FindPostedByLedgerAndPeriod(ctx context.Context, tenantID, ledgerID, periodID string) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveJournalEntry persists a POSTED entry and all of its lines.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
