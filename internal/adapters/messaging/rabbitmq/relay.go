package rabbitmq

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

// MessagePublisher delivers one outbox event to the broker.
type MessagePublisher interface {
	Publish(ctx context.Context, event domain.OutboxEvent) error
}

// RelayConfig tunes the polling loop.
type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	Retention    time.Duration // published events older than this are purged; zero keeps them
}

// Relay moves PENDING outbox events to the broker.
type Relay struct {
	uow       portsrepo.UnitOfWork
	outbox    portsrepo.OutboxRepositoryFacade
	publisher MessagePublisher
	cfg       RelayConfig
	logger    *slog.Logger
	now       func() time.Time
}

func NewRelay(uow portsrepo.UnitOfWork, outbox portsrepo.OutboxRepositoryFacade, publisher MessagePublisher, cfg RelayConfig, logger *slog.Logger) *Relay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Relay{
		uow:       uow,
		outbox:    outbox,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	r.logger.Info("Outbox relay started",
		slog.Duration("poll_interval", r.cfg.PollInterval),
		slog.Int("batch_size", r.cfg.BatchSize))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopped")
			return nil
		case <-ticker.C:
			// Keep draining while whole batches go through cleanly.
			for {
				n, err := r.RelayOnce(ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						r.logger.Error("Outbox relay pass failed", slog.String("error", err.Error()))
					}
					break
				}
				if n < r.cfg.BatchSize {
					break
				}
			}
			r.purge(ctx)
		}
	}
}

// RelayOnce publishes one batch and records the outcome of each event. It
// returns how many events were published.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	published := 0
	err := r.uow.WithinTx(ctx, func(ctx context.Context) error {
		events, err := r.outbox.FetchPending(ctx, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		for _, event := range events {
			if pubErr := r.publisher.Publish(ctx, event); pubErr != nil {
				r.logger.Warn("Failed to publish outbox event",
					slog.String("event_id", event.EventID),
					slog.String("event_type", event.EventType),
					slog.Int("attempts", event.Attempts+1),
					slog.String("error", pubErr.Error()))
				if err := r.outbox.MarkFailed(ctx, event.EventID, pubErr.Error(), r.cfg.MaxAttempts); err != nil {
					return err
				}
				continue
			}
			if err := r.outbox.MarkPublished(ctx, event.EventID, r.now()); err != nil {
				return err
			}
			published++
		}
		return nil
	})
	return published, err
}

func (r *Relay) purge(ctx context.Context) {
	if r.cfg.Retention <= 0 {
		return
	}
	n, err := r.outbox.DeletePublishedBefore(ctx, r.now().Add(-r.cfg.Retention))
	if err != nil {
		r.logger.Error("Failed to purge published outbox events", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		r.logger.Debug("Purged published outbox events", slog.Int64("count", n))
	}
}
