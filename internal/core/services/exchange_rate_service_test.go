package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// ExchangeRateServiceTestSuite defines the test suite for ExchangeRateService
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo        *MockExchangeRateRepository
	mockCurrencyService *MockCurrencyService
	service             portssvc.ExchangeRateSvcFacade
	ctx                 context.Context
	asOf                time.Time
}

// SetupTest runs before each test in the suite
func (s *ExchangeRateServiceTestSuite) SetupTest() {
	s.mockRateRepo = new(MockExchangeRateRepository)
	s.mockCurrencyService = new(MockCurrencyService)
	s.service = services.NewExchangeRateService(s.mockRateRepo, s.mockCurrencyService, services.WithRateBreaker(2, time.Minute))
	s.ctx = context.Background()
	s.asOf = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	s.mockCurrencyService.On("GetCurrencyByCode", s.ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	s.mockCurrencyService.On("GetCurrencyByCode", s.ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	s.mockRateRepo.On("SaveExchangeRate", s.ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.BaseCurrency == "EUR" && r.QuoteCurrency == "USD" && r.ExchangeRateID != "" && r.CreatedBy == testActor
	})).Return(nil).Once()

	rate, err := s.service.CreateExchangeRate(s.ctx, dto.CreateExchangeRateRequest{
		BaseCurrency:  "eur",
		QuoteCurrency: "usd",
		Rate:          decimal.RequireFromString("1.0850"),
		AsOf:          s.asOf,
	}, testActor)

	s.Require().NoError(err)
	s.True(rate.Rate.Equal(decimal.RequireFromString("1.085")))
	s.mockCurrencyService.AssertExpectations(s.T())
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Invalid() {
	tests := []struct {
		name string
		req  dto.CreateExchangeRateRequest
	}{
		{"same currency", dto.CreateExchangeRateRequest{BaseCurrency: "USD", QuoteCurrency: "usd", Rate: decimal.NewFromInt(1), AsOf: time.Now()}},
		{"zero rate", dto.CreateExchangeRateRequest{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.Zero, AsOf: time.Now()}},
		{"negative rate", dto.CreateExchangeRateRequest{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.NewFromInt(-2), AsOf: time.Now()}},
		{"bad code", dto.CreateExchangeRateRequest{BaseCurrency: "EU", QuoteCurrency: "USD", Rate: decimal.NewFromInt(2), AsOf: time.Now()}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateExchangeRate(s.ctx, tt.req, testActor)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.mockRateRepo.AssertNotCalled(s.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (s *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrency() {
	s.mockCurrencyService.On("GetCurrencyByCode", s.ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	s.mockCurrencyService.On("GetCurrencyByCode", s.ctx, "XTS").Return(nil, apperrors.NewNotFoundError("currency XTS")).Once()

	_, err := s.service.CreateExchangeRate(s.ctx, dto.CreateExchangeRateRequest{
		BaseCurrency: "EUR", QuoteCurrency: "XTS", Rate: decimal.NewFromInt(3), AsOf: s.asOf,
	}, testActor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "currency code 'XTS' not found")
}

func (s *ExchangeRateServiceTestSuite) TestFindRate_SameCurrency() {
	rate, err := s.service.FindRate(s.ctx, "usd", "USD", s.asOf)

	s.Require().NoError(err)
	s.True(rate.Rate.Equal(decimal.NewFromInt(1)))
	s.mockRateRepo.AssertNotCalled(s.T(), "FindLatestRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ExchangeRateServiceTestSuite) TestFindRate_Direct() {
	stored := &domain.ExchangeRate{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.RequireFromString("1.20"), AsOf: s.asOf}
	s.mockRateRepo.On("FindLatestRate", s.ctx, "EUR", "USD", s.asOf).Return(stored, nil).Once()

	rate, err := s.service.FindRate(s.ctx, "EUR", "USD", s.asOf)

	s.Require().NoError(err)
	s.Equal(stored, rate)
	s.mockRateRepo.AssertExpectations(s.T())
}

func (s *ExchangeRateServiceTestSuite) TestFindRate_InvertsReverse() {
	s.mockRateRepo.On("FindLatestRate", s.ctx, "EUR", "USD", s.asOf).Return(nil, apperrors.NewNotFoundError("rate EUR/USD")).Once()
	s.mockRateRepo.On("FindLatestRate", s.ctx, "USD", "EUR", s.asOf).
		Return(&domain.ExchangeRate{BaseCurrency: "USD", QuoteCurrency: "EUR", Rate: decimal.RequireFromString("1.25")}, nil).Once()

	rate, err := s.service.FindRate(s.ctx, "EUR", "USD", s.asOf)

	s.Require().NoError(err)
	s.Equal("EUR", rate.BaseCurrency)
	s.Equal("USD", rate.QuoteCurrency)
	s.True(rate.Rate.Equal(decimal.RequireFromString("0.8")), "got %s", rate.Rate)
}

func (s *ExchangeRateServiceTestSuite) TestFindRate_Unavailable() {
	s.mockRateRepo.On("FindLatestRate", s.ctx, mock.Anything, mock.Anything, s.asOf).Return(nil, apperrors.NewNotFoundError("rate"))

	_, err := s.service.FindRate(s.ctx, "EUR", "CHF", s.asOf)

	s.ErrorIs(err, apperrors.ErrRateUnavailable)
	s.mockRateRepo.AssertNumberOfCalls(s.T(), "FindLatestRate", 2)
}

func (s *ExchangeRateServiceTestSuite) TestFindRate_BreakerOpensOnStoreFailures() {
	dbErr := errors.New("connection refused")
	s.mockRateRepo.On("FindLatestRate", s.ctx, "EUR", "USD", s.asOf).Return(nil, dbErr).Twice()

	for i := 0; i < 2; i++ {
		_, err := s.service.FindRate(s.ctx, "EUR", "USD", s.asOf)
		s.ErrorIs(err, apperrors.ErrRateUnavailable)
		s.ErrorIs(err, dbErr)
	}

	_, err := s.service.FindRate(s.ctx, "EUR", "USD", s.asOf)

	s.ErrorIs(err, apperrors.ErrRateUnavailable)
	s.ErrorIs(err, gobreaker.ErrOpenState)
	s.mockRateRepo.AssertNumberOfCalls(s.T(), "FindLatestRate", 2)
}

func (s *ExchangeRateServiceTestSuite) TestFindRate_MissingRatesDoNotTripBreaker() {
	s.mockRateRepo.On("FindLatestRate", s.ctx, mock.Anything, mock.Anything, s.asOf).Return(nil, apperrors.NewNotFoundError("rate"))

	for i := 0; i < 3; i++ {
		_, err := s.service.FindRate(s.ctx, "EUR", "JPY", s.asOf)
		s.ErrorIs(err, apperrors.ErrRateUnavailable)
		s.NotErrorIs(err, gobreaker.ErrOpenState)
	}
	s.mockRateRepo.AssertNumberOfCalls(s.T(), "FindLatestRate", 6)
}
