package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	GetJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostJournalEntry validates, normalizes to base currency, checks balance and
	// dimensions, posts, persists and publishes the entry in one unit of work.
	PostJournalEntry(ctx context.Context, tenantID string, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// RevaluationSvcFacade books unrealized FX gains and losses.
type RevaluationSvcFacade interface {
	// RunRevaluation returns (nil, nil) when there is nothing to adjust.
	RunRevaluation(ctx context.Context, tenantID string, req dto.RunRevaluationRequest, actor string) (*domain.JournalEntry, error)
}
