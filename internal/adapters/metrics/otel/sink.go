// Package otel records ledger counters through an OpenTelemetry meter.
package otel

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName scopes every instrument created by the sink.
const MeterName = "github.com/SscSPs/ledger_core"

const (
	MetricDimensionValidationFailures = "finance.dimension.validation.failures"
	MetricOrphanLines                 = "finance.dimension.orphan_lines"
	MetricJournalPosted               = "finance.command.journal.posted"
	MetricPeriodTransitions           = "finance.command.period.transitions"
	MetricFxRevaluation               = "finance.command.fx_revaluation"
)

// Sink implements portssvc.MetricsSink with Int64 counters.
type Sink struct {
	validationFailures metric.Int64Counter
	orphanLines        metric.Int64Counter
	journalPosted      metric.Int64Counter
	periodTransitions  metric.Int64Counter
	revaluations       metric.Int64Counter
}

var _ portssvc.MetricsSink = (*Sink)(nil)

// NewSink creates all counters up front on a meter from provider.
func NewSink(provider metric.MeterProvider) (*Sink, error) {
	meter := provider.Meter(MeterName)
	s := &Sink{}

	for _, c := range []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&s.validationFailures, MetricDimensionValidationFailures, "Journal lines rejected by dimension validation"},
		{&s.orphanLines, MetricOrphanLines, "Lines whose account type could not be resolved during dimension validation"},
		{&s.journalPosted, MetricJournalPosted, "Journal entries posted"},
		{&s.periodTransitions, MetricPeriodTransitions, "Accounting period status transitions"},
		{&s.revaluations, MetricFxRevaluation, "Currency revaluation adjustments posted"},
	} {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit("{count}"))
		if err != nil {
			return nil, fmt.Errorf("failed to create counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}
	return s, nil
}

func (s *Sink) RecordDimensionValidationFailure(ctx context.Context, reason domain.DimensionFailureReason, dimensionType domain.DimensionType, accountType domain.AccountType) {
	s.validationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", string(reason)),
		attribute.String("dimensionType", string(dimensionType)),
		attribute.String("accountType", string(accountType)),
	))
}

func (s *Sink) RecordOrphanLine(ctx context.Context, accountType domain.AccountType) {
	s.orphanLines.Add(ctx, 1, metric.WithAttributes(attribute.String("accountType", string(accountType))))
}

// RecordJournalPosted counts entries; the line count rides along as an attribute bucket.
func (s *Sink) RecordJournalPosted(ctx context.Context, lines int) {
	s.journalPosted.Add(ctx, 1, metric.WithAttributes(attribute.String("lines", lineBucket(lines))))
}

func (s *Sink) RecordPeriodTransition(ctx context.Context, status domain.PeriodStatus) {
	s.periodTransitions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(status))))
}

func (s *Sink) RecordRevaluation(ctx context.Context) {
	s.revaluations.Add(ctx, 1)
}

func lineBucket(lines int) string {
	switch {
	case lines <= 2:
		return "2"
	case lines <= 10:
		return "3-10"
	case lines <= 100:
		return "11-100"
	}
	return ">100"
}
