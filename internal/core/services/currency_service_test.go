package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// CurrencyServiceTestSuite defines the test suite for CurrencyService
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
	ctx      context.Context
}

// SetupTest runs before each test in the suite
func (s *CurrencyServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockCurrencyRepository)
	s.service = services.NewCurrencyService(s.mockRepo)
	s.ctx = context.Background()
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	req := dto.CreateCurrencyRequest{
		CurrencyCode: "eur",
		Symbol:       "€",
		Name:         "Euro",
	}
	s.mockRepo.On("SaveCurrency", s.ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "EUR" && c.Precision == 2 && c.CreatedBy == testActor
	})).Return(nil).Once()

	currency, err := s.service.CreateCurrency(s.ctx, req, testActor)

	s.Require().NoError(err)
	s.Equal("EUR", currency.CurrencyCode)
	s.Equal(int32(2), currency.Precision)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_ExplicitPrecision() {
	precision := int32(0)
	s.mockRepo.On("SaveCurrency", s.ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.CurrencyCode == "JPY" && c.Precision == 0
	})).Return(nil).Once()

	currency, err := s.service.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "JPY", Symbol: "¥", Name: "Yen", Precision: &precision,
	}, testActor)

	s.Require().NoError(err)
	s.Equal(int32(0), currency.Precision)
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_InvalidCode() {
	_, err := s.service.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{CurrencyCode: "EU1", Symbol: "?", Name: "Bad"}, testActor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (s *CurrencyServiceTestSuite) TestCreateCurrency_RepositoryError() {
	expectedError := errors.New("database error")
	s.mockRepo.On("SaveCurrency", s.ctx, mock.Anything).Return(expectedError).Once()

	currency, err := s.service.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"}, testActor)

	s.Nil(currency)
	s.ErrorIs(err, expectedError)
	s.Contains(err.Error(), "failed to create currency in service")
}

func (s *CurrencyServiceTestSuite) TestGetCurrencyByCode() {
	expected := &domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
	s.mockRepo.On("FindCurrencyByCode", s.ctx, "USD").Return(expected, nil).Once()

	currency, err := s.service.GetCurrencyByCode(s.ctx, " usd ")

	s.Require().NoError(err)
	s.Equal(expected, currency)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	s.mockRepo.On("FindCurrencyByCode", s.ctx, "XYZ").Return(nil, apperrors.NewNotFoundError("currency XYZ")).Once()

	currency, err := s.service.GetCurrencyByCode(s.ctx, "XYZ")

	s.Nil(currency)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *CurrencyServiceTestSuite) TestListCurrencies_Empty() {
	s.mockRepo.On("ListCurrencies", s.ctx).Return(nil, nil).Once()

	currencies, err := s.service.ListCurrencies(s.ctx)

	s.Require().NoError(err)
	s.NotNil(currencies)
	s.Empty(currencies)
}
