package services

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/platform/config"
)

// ContainerOption swaps a collaborator of the service container.
type ContainerOption func(*containerCollaborators)

type containerCollaborators struct {
	publisher portssvc.EventPublisher
	metrics   portssvc.MetricsSink
}

// WithEventPublisher overrides the default outbox publisher.
func WithEventPublisher(publisher portssvc.EventPublisher) ContainerOption {
	return func(c *containerCollaborators) { c.publisher = publisher }
}

// WithMetricsSink records operational counters to sink.
func WithMetricsSink(sink portssvc.MetricsSink) ContainerOption {
	return func(c *containerCollaborators) { c.metrics = sink }
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...ContainerOption) *portssvc.ServiceContainer {
	collaborators := &containerCollaborators{}
	for _, opt := range opts {
		opt(collaborators)
	}
	if collaborators.publisher == nil {
		collaborators.publisher = NewOutboxPublisher(repos.OutboxRepo)
	}
	if collaborators.metrics == nil {
		collaborators.metrics = nopMetricsSink{}
	}
	publisher, metrics := collaborators.publisher, collaborators.metrics

	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency,
		WithRateBreaker(cfg.RateBreakerMaxFailures, cfg.RateBreakerTimeout))

	container.Ledger = NewLedgerService(repos.UnitOfWork, repos.LedgerRepo, repos.ChartRepo, repos.CurrencyRepo)
	container.Period = NewPeriodService(repos.UnitOfWork, repos.LedgerRepo, repos.PeriodRepo, publisher, metrics)

	container.DimensionPolicy = NewDimensionPolicyService(repos.UnitOfWork, repos.PolicyRepo)
	container.DimensionValidator = NewDimensionValidationService(repos.DimensionRepo, container.DimensionPolicy, metrics)
	container.Dimension = NewDimensionService(repos.UnitOfWork, repos.DimensionRepo, publisher)
	container.ControlAccount = NewControlAccountService(repos.ControlAccountRepo)

	container.Journal = NewJournalService(repos, container.ExchangeRate, container.DimensionValidator, publisher, metrics)
	container.Revaluation = NewRevaluationService(repos, container.ExchangeRate, publisher, metrics)

	return container
}
