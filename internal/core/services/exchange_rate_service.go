package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const (
	defaultRateBreakerMaxFailures = 5
	defaultRateBreakerTimeout     = 30 * time.Second
)

// exchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	breaker         *gobreaker.CircuitBreaker
}

// ExchangeRateOption configures the exchange rate service.
type ExchangeRateOption func(*exchangeRateService)

// WithRateBreaker sets how many consecutive store failures open the breaker and how long it stays open.
func WithRateBreaker(maxFailures uint32, openTimeout time.Duration) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.breaker = newRateBreaker(maxFailures, openTimeout)
	}
}

// NewExchangeRateService creates the rate provider and rate registry.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyReaderSvc, opts ...ExchangeRateOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.breaker == nil {
		svc.breaker = newRateBreaker(defaultRateBreakerMaxFailures, defaultRateBreakerTimeout)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func newRateBreaker(maxFailures uint32, openTimeout time.Duration) *gobreaker.CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = defaultRateBreakerMaxFailures
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "exchange-rate-store",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		// A missing rate is an answer, not a store failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, apperrors.ErrNotFound)
		},
	})
}

// CreateExchangeRate records a rate after checking both currencies are registered.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	rate, err := domain.NewExchangeRate(req.BaseCurrency, req.QuoteCurrency, req.Rate, req.AsOf.UTC())
	if err != nil {
		return nil, err
	}
	if rate.BaseCurrency == rate.QuoteCurrency {
		return nil, fmt.Errorf("%w: base and quote currency cannot be the same", apperrors.ErrValidation)
	}

	for _, code := range []string{rate.BaseCurrency, rate.QuoteCurrency} {
		if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	rate.ExchangeRateID = uuid.NewString()
	rate.AuditFields = domain.NewAuditFields(creatorUserID, s.Now())

	if err := s.rateRepo.SaveExchangeRate(ctx, *rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("base_currency", rate.BaseCurrency),
			slog.String("quote_currency", rate.QuoteCurrency))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	return rate, nil
}

// FindRate resolves the direct rate, then the inverted reverse rate.
func (s *exchangeRateService) FindRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	base, quote := domain.NormalizeCurrency(baseCurrency), domain.NormalizeCurrency(quoteCurrency)
	if base == quote {
		return domain.IdentityRate(base, asOf), nil
	}

	direct, err := s.lookup(ctx, base, quote, asOf)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, s.unavailable(ctx, base, quote, asOf, err)
	}

	reverse, err := s.lookup(ctx, quote, base, asOf)
	if err == nil {
		return reverse.Invert(), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, s.unavailable(ctx, base, quote, asOf, err)
	}
	return nil, fmt.Errorf("%w: no rate %s/%s as of %s", apperrors.ErrRateUnavailable, base, quote, asOf.Format(time.RFC3339))
}

func (s *exchangeRateService) lookup(ctx context.Context, base, quote string, asOf time.Time) (*domain.ExchangeRate, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		return s.rateRepo.FindLatestRate(ctx, base, quote, asOf)
	})
	if err != nil {
		return nil, err
	}
	rate, _ := res.(*domain.ExchangeRate)
	if rate == nil {
		return nil, apperrors.ErrNotFound
	}
	return rate, nil
}

func (s *exchangeRateService) unavailable(ctx context.Context, base, quote string, asOf time.Time, err error) error {
	s.LogError(ctx, err, "Exchange rate lookup failed",
		slog.String("base_currency", base),
		slog.String("quote_currency", quote),
		slog.Time("as_of", asOf))
	return fmt.Errorf("%w: %s/%s: %w", apperrors.ErrRateUnavailable, base, quote, err)
}
