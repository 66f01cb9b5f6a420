package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelJournalEntry splits an entry into its header row and numbered line rows.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalLine) {
	header := models.JournalEntry{
		EntryID:     d.EntryID,
		TenantID:    d.TenantID,
		LedgerID:    d.LedgerID,
		PeriodID:    d.PeriodID,
		Status:      string(d.Status),
		Reference:   d.Reference,
		Description: d.Description,
		BookedAt:    d.BookedAt,
		PostedAt:    d.PostedAt,
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			LineID:              l.LineID,
			EntryID:             d.EntryID,
			LineNo:              i + 1,
			AccountID:           l.AccountID,
			Direction:           string(l.Direction),
			AmountMinor:         l.Amount.AmountMinor,
			Currency:            l.Amount.Currency,
			OriginalAmountMinor: l.OriginalAmount.AmountMinor,
			OriginalCurrency:    l.OriginalCurrency,
			Description:         l.Description,
			CostCenterID:        nullable(l.Dimensions.CostCenterID),
			ProfitCenterID:      nullable(l.Dimensions.ProfitCenterID),
			DepartmentID:        nullable(l.Dimensions.DepartmentID),
			ProjectID:           nullable(l.Dimensions.ProjectID),
			BusinessAreaID:      nullable(l.Dimensions.BusinessAreaID),
		}
	}
	return header, lines
}

// ToDomainJournalEntry assembles an entry; lines must already be ordered by line_no.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     m.EntryID,
		TenantID:    m.TenantID,
		LedgerID:    m.LedgerID,
		PeriodID:    m.PeriodID,
		Status:      domain.JournalStatus(m.Status),
		Reference:   m.Reference,
		Description: m.Description,
		BookedAt:    m.BookedAt.UTC(),
		PostedAt:    m.PostedAt,
		Lines:       make([]domain.JournalEntryLine, len(lines)),
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		entry.Lines[i] = domain.JournalEntryLine{
			LineID:           l.LineID,
			AccountID:        l.AccountID,
			Direction:        domain.EntryDirection(l.Direction),
			Amount:           domain.Money{AmountMinor: l.AmountMinor, Currency: l.Currency},
			OriginalAmount:   domain.Money{AmountMinor: l.OriginalAmountMinor, Currency: l.OriginalCurrency},
			OriginalCurrency: l.OriginalCurrency,
			Description:      l.Description,
			Dimensions: domain.DimensionAssignments{
				CostCenterID:   deref(l.CostCenterID),
				ProfitCenterID: deref(l.ProfitCenterID),
				DepartmentID:   deref(l.DepartmentID),
				ProjectID:      deref(l.ProjectID),
				BusinessAreaID: deref(l.BusinessAreaID),
			},
		}
	}
	return entry
}

func ToModelOutboxEvent(d domain.OutboxEvent) models.OutboxEvent {
	return models.OutboxEvent{
		EventID:     d.EventID,
		TenantID:    d.TenantID,
		AggregateID: d.AggregateID,
		EventType:   d.EventType,
		RoutingKey:  d.RoutingKey,
		Payload:     d.Payload,
		Status:      string(d.Status),
		Attempts:    d.Attempts,
		LastError:   nullable(d.LastError),
		CreatedAt:   d.CreatedAt,
		PublishedAt: d.PublishedAt,
	}
}

func ToDomainOutboxEvent(m models.OutboxEvent) domain.OutboxEvent {
	return domain.OutboxEvent{
		EventID:     m.EventID,
		TenantID:    m.TenantID,
		AggregateID: m.AggregateID,
		EventType:   m.EventType,
		RoutingKey:  m.RoutingKey,
		Payload:     m.Payload,
		Status:      domain.OutboxStatus(m.Status),
		Attempts:    m.Attempts,
		LastError:   deref(m.LastError),
		CreatedAt:   m.CreatedAt.UTC(),
		PublishedAt: m.PublishedAt,
	}
}
