package domain

import (
	"strings"
	"time"
)

// Event types written to the outbox.
const (
	EventJournalPosted    = "finance.journal.posted"
	EventDimensionChanged = "finance.dimension.changed"
	eventPeriodPrefix     = "finance.period."
)

// Routing keys the outbox relay publishes to.
const (
	RoutingJournalEvents   = "finance-journal-events-out"
	RoutingPeriodEvents    = "finance-period-events-out"
	RoutingDimensionEvents = "finance-dimension-events-out"
)

// PeriodEventType names the event for a period that moved to status.
func PeriodEventType(status PeriodStatus) string {
	switch status {
	case PeriodClosed:
		return eventPeriodPrefix + "closed"
	case PeriodFrozen:
		return eventPeriodPrefix + "frozen"
	case PeriodOpen:
		return eventPeriodPrefix + "reopened"
	}
	return eventPeriodPrefix + strings.ToLower(string(status))
}

// JournalPostedLine is one line of the journal-posted payload.
type JournalPostedLine struct {
	LineID              string               `json:"lineId"`
	AccountID           string               `json:"accountId"`
	Direction           EntryDirection       `json:"direction"`
	AmountMinor         int64                `json:"amountMinor"`
	Currency            string               `json:"currency"`
	OriginalAmountMinor int64                `json:"originalAmountMinor"`
	OriginalCurrency    string               `json:"originalCurrency"`
	Description         string               `json:"description,omitempty"`
	Dimensions          DimensionAssignments `json:"dimensions"`
}

// JournalPostedEvent is the payload of finance.journal.posted.
type JournalPostedEvent struct {
	EventType        string              `json:"eventType"`
	Version          int                 `json:"version"`
	EntryID          string              `json:"entryId"`
	TenantID         string              `json:"tenantId"`
	LedgerID         string              `json:"ledgerId"`
	PeriodID         string              `json:"periodId"`
	Reference        string              `json:"reference,omitempty"`
	Description      string              `json:"description,omitempty"`
	BookedAt         time.Time           `json:"bookedAt"`
	PostedAt         *time.Time          `json:"postedAt,omitempty"`
	Currency         string              `json:"currency"`
	TotalDebitMinor  int64               `json:"totalDebitMinor"`
	TotalCreditMinor int64               `json:"totalCreditMinor"`
	Lines            []JournalPostedLine `json:"lines"`
}

// NewJournalPostedEvent builds the payload from a posted entry.
func NewJournalPostedEvent(e *JournalEntry) JournalPostedEvent {
	debit, credit, _ := e.Totals()
	lines := make([]JournalPostedLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, JournalPostedLine{
			LineID:              l.LineID,
			AccountID:           l.AccountID,
			Direction:           l.Direction,
			AmountMinor:         l.Amount.AmountMinor,
			Currency:            l.Amount.Currency,
			OriginalAmountMinor: l.OriginalAmount.AmountMinor,
			OriginalCurrency:    l.OriginalCurrency,
			Description:         l.Description,
			Dimensions:          l.Dimensions,
		})
	}
	return JournalPostedEvent{
		EventType:        EventJournalPosted,
		Version:          1,
		EntryID:          e.EntryID,
		TenantID:         e.TenantID,
		LedgerID:         e.LedgerID,
		PeriodID:         e.PeriodID,
		Reference:        e.Reference,
		Description:      e.Description,
		BookedAt:         e.BookedAt,
		PostedAt:         e.PostedAt,
		Currency:         debit.Currency,
		TotalDebitMinor:  debit.AmountMinor,
		TotalCreditMinor: credit.AmountMinor,
		Lines:            lines,
	}
}

// PeriodStatusEvent is the payload of finance.period.*.
type PeriodStatusEvent struct {
	EventType      string       `json:"eventType"`
	Version        int          `json:"version"`
	PeriodID       string       `json:"periodId"`
	TenantID       string       `json:"tenantId"`
	LedgerID       string       `json:"ledgerId"`
	PeriodCode     string       `json:"periodCode"`
	PreviousStatus PeriodStatus `json:"previousStatus"`
	CurrentStatus  PeriodStatus `json:"currentStatus"`
	FreezeOnly     bool         `json:"freezeOnly"`
	OccurredAt     time.Time    `json:"occurredAt"`
}

// NewPeriodStatusEvent builds the payload for a transition away from previous.
func NewPeriodStatusEvent(p *AccountingPeriod, previous PeriodStatus, at time.Time) PeriodStatusEvent {
	return PeriodStatusEvent{
		EventType:      PeriodEventType(p.Status),
		Version:        1,
		PeriodID:       p.PeriodID,
		TenantID:       p.TenantID,
		LedgerID:       p.LedgerID,
		PeriodCode:     p.Code,
		PreviousStatus: previous,
		CurrentStatus:  p.Status,
		FreezeOnly:     p.Status == PeriodFrozen,
		OccurredAt:     at.UTC(),
	}
}

// DimensionAction classifies a dimension change.
type DimensionAction string

const (
	DimensionActionCreated DimensionAction = "CREATED"
	DimensionActionUpdated DimensionAction = "UPDATED"
	DimensionActionRetired DimensionAction = "RETIRED"
)

// DimensionChangeAction derives the action for an upsert of d.
func DimensionChangeAction(existed bool, d *AccountingDimension) DimensionAction {
	switch {
	case d.Status == DimensionRetired:
		return DimensionActionRetired
	case !existed && d.Status == DimensionActive:
		return DimensionActionCreated
	default:
		return DimensionActionUpdated
	}
}

// DimensionChangedEvent is the payload of finance.dimension.changed.
type DimensionChangedEvent struct {
	EventType     string          `json:"eventType"`
	Version       int             `json:"version"`
	Action        DimensionAction `json:"action"`
	DimensionID   string          `json:"dimensionId"`
	TenantID      string          `json:"tenantId"`
	CompanyCodeID string          `json:"companyCodeId"`
	Type          DimensionType   `json:"type"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Status        DimensionStatus `json:"status"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidTo       *time.Time      `json:"validTo,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

func NewDimensionChangedEvent(d *AccountingDimension, action DimensionAction, at time.Time) DimensionChangedEvent {
	return DimensionChangedEvent{
		EventType:     EventDimensionChanged,
		Version:       1,
		Action:        action,
		DimensionID:   d.DimensionID,
		TenantID:      d.TenantID,
		CompanyCodeID: d.CompanyCodeID,
		Type:          d.Type,
		Code:          d.Code,
		Name:          d.Name,
		Status:        d.Status,
		ValidFrom:     d.ValidFrom,
		ValidTo:       d.ValidTo,
		OccurredAt:    at.UTC(),
	}
}

// OutboxStatus is the delivery state of an outbox event.
type OutboxStatus string

const (
	OutboxPending   OutboxStatus = "PENDING"
	OutboxPublished OutboxStatus = "PUBLISHED"
	OutboxFailed    OutboxStatus = "FAILED"
)

// OutboxEvent is a serialized event waiting to be relayed to the broker.
type OutboxEvent struct {
	EventID     string       `json:"eventID"`
	TenantID    string       `json:"tenantID"`
	AggregateID string       `json:"aggregateID"`
	EventType   string       `json:"eventType"`
	RoutingKey  string       `json:"routingKey"`
	Payload     []byte       `json:"payload"`
	Status      OutboxStatus `json:"status"`
	Attempts    int          `json:"attempts"`
	LastError   string       `json:"lastError,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty"`
}
