package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
)

const defaultCurrencyPrecision int32 = 2

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates the currency registry service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := domain.NormalizeCurrency(req.CurrencyCode)
	if !domain.IsCurrencyCode(code) {
		return nil, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, req.CurrencyCode)
	}
	precision := defaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       strings.TrimSpace(req.Symbol),
		Name:         strings.TrimSpace(req.Name),
		Precision:    precision,
		AuditFields:  domain.NewAuditFields(creatorUserID, s.Now()),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := domain.NormalizeCurrency(currencyCode)
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	if currency == nil {
		return nil, apperrors.NewNotFoundError("currency " + code)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
