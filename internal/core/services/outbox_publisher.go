package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/google/uuid"
)

// outboxPublisher implements EventPublisher by writing events to the outbox in
// the caller's unit of work. Delivery to the broker happens later, in the relay.
type outboxPublisher struct {
	BaseService
	outbox portsrepo.OutboxRepositoryFacade
}

// NewOutboxPublisher creates an EventPublisher backed by the outbox table.
func NewOutboxPublisher(outbox portsrepo.OutboxRepositoryFacade) portssvc.EventPublisher {
	return &outboxPublisher{outbox: outbox}
}

var _ portssvc.EventPublisher = (*outboxPublisher)(nil)

func (p *outboxPublisher) PublishJournalPosted(ctx context.Context, entry *domain.JournalEntry) error {
	payload := domain.NewJournalPostedEvent(entry)
	return p.enqueue(ctx, entry.TenantID, entry.EntryID, payload.EventType, domain.RoutingJournalEvents, payload)
}

func (p *outboxPublisher) PublishPeriodUpdated(ctx context.Context, period *domain.AccountingPeriod, previous domain.PeriodStatus) error {
	payload := domain.NewPeriodStatusEvent(period, previous, p.Now())
	return p.enqueue(ctx, period.TenantID, period.PeriodID, payload.EventType, domain.RoutingPeriodEvents, payload)
}

func (p *outboxPublisher) PublishDimensionChanged(ctx context.Context, dimension *domain.AccountingDimension, action domain.DimensionAction) error {
	payload := domain.NewDimensionChangedEvent(dimension, action, p.Now())
	return p.enqueue(ctx, dimension.TenantID, dimension.DimensionID, payload.EventType, domain.RoutingDimensionEvents, payload)
}

func (p *outboxPublisher) enqueue(ctx context.Context, tenantID, aggregateID, eventType, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}
	event := domain.OutboxEvent{
		EventID:     uuid.NewString(),
		TenantID:    tenantID,
		AggregateID: aggregateID,
		EventType:   eventType,
		RoutingKey:  routingKey,
		Payload:     body,
		Status:      domain.OutboxPending,
		CreatedAt:   p.Now(),
	}
	if err := p.outbox.SaveOutboxEvent(ctx, event); err != nil {
		p.LogError(ctx, err, "Failed to store outbox event",
			slog.String("event_type", eventType),
			slog.String("aggregate_id", aggregateID))
		return err
	}
	return nil
}

// nopMetricsSink is used when no metrics backend is wired.
type nopMetricsSink struct{}

func (nopMetricsSink) RecordDimensionValidationFailure(context.Context, domain.DimensionFailureReason, domain.DimensionType, domain.AccountType) {
}
func (nopMetricsSink) RecordOrphanLine(context.Context, domain.AccountType)        {}
func (nopMetricsSink) RecordJournalPosted(context.Context, int)                    {}
func (nopMetricsSink) RecordPeriodTransition(context.Context, domain.PeriodStatus) {}
func (nopMetricsSink) RecordRevaluation(context.Context)                           {}
