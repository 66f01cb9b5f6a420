package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	uow          *fakeUnitOfWork
	ledgerRepo   *MockLedgerRepository
	chartRepo    *MockChartRepository
	currencyRepo *MockCurrencyRepository
	service      portssvc.LedgerSvcFacade
	ctx          context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.uow = &fakeUnitOfWork{}
	s.ledgerRepo = new(MockLedgerRepository)
	s.chartRepo = new(MockChartRepository)
	s.currencyRepo = new(MockCurrencyRepository)
	s.service = services.NewLedgerService(s.uow, s.ledgerRepo, s.chartRepo, s.currencyRepo)
	s.ctx = context.Background()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestCreateLedger_WithNewChart() {
	s.currencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	s.chartRepo.On("SaveChart", mock.Anything, mock.MatchedBy(func(c domain.ChartOfAccounts) bool {
		return c.Code == "IFRS" && c.BaseCurrency == "USD"
	})).Return(echoChart, nil).Once()
	s.ledgerRepo.On("SaveLedger", mock.Anything, mock.AnythingOfType("domain.Ledger")).Return(echoLedger, nil).Once()

	ledger, chart, err := s.service.CreateLedger(s.ctx, testTenant, dto.CreateLedgerRequest{
		ChartCode:    "IFRS",
		ChartName:    "IFRS chart",
		BaseCurrency: "usd",
	}, testActor)

	s.Require().NoError(err)
	s.Equal(chart.ChartID, ledger.ChartOfAccountsID)
	s.Equal("USD", ledger.BaseCurrency)
	s.Equal(domain.LedgerActive, ledger.Status)
	s.Equal(1, s.uow.calls)
	s.chartRepo.AssertExpectations(s.T())
	s.ledgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateLedger_ChartCurrencyMismatch() {
	s.currencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-eur").
		Return(&domain.ChartOfAccounts{ChartID: "chart-eur", BaseCurrency: "EUR"}, nil)

	_, _, err := s.service.CreateLedger(s.ctx, testTenant, dto.CreateLedgerRequest{
		ChartOfAccountsID: "chart-eur",
		BaseCurrency:      "USD",
	}, testActor)

	s.ErrorIs(err, apperrors.ErrCurrencyMismatch)
	s.ledgerRepo.AssertNotCalled(s.T(), "SaveLedger", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestCreateLedger_UnregisteredCurrency() {
	s.currencyRepo.On("FindCurrencyByCode", mock.Anything, "XTS").Return(nil, apperrors.NewNotFoundError("currency XTS"))

	_, _, err := s.service.CreateLedger(s.ctx, testTenant, dto.CreateLedgerRequest{ChartCode: "A", ChartName: "A", BaseCurrency: "XTS"}, testActor)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.chartRepo.AssertNotCalled(s.T(), "SaveChart", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestDefineAccount() {
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(&domain.ChartOfAccounts{
		ChartID:  "chart-1",
		Accounts: map[string]domain.Account{"root": {AccountID: "root", Code: "1", Name: "Assets", AccountType: domain.Asset, CurrencyCode: "USD"}},
	}, nil)
	s.chartRepo.On("SaveChart", mock.Anything, mock.MatchedBy(func(c domain.ChartOfAccounts) bool {
		return len(c.Accounts) == 2 && c.LastUpdatedBy == testActor
	})).Return(echoChart, nil).Once()

	chart, err := s.service.DefineAccount(s.ctx, testTenant, "chart-1", dto.DefineAccountRequest{
		Code:            "1000",
		Name:            "Cash",
		AccountType:     domain.Asset,
		CurrencyCode:    "USD",
		ParentAccountID: "root",
		IsPosting:       true,
	}, testActor)

	s.Require().NoError(err)
	s.Len(chart.Accounts, 2)
	s.chartRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestDefineAccount_DuplicateCode() {
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(&domain.ChartOfAccounts{
		ChartID:  "chart-1",
		Accounts: map[string]domain.Account{"cash": {AccountID: "cash", Code: "1000", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "USD", IsPosting: true}},
	}, nil)

	_, err := s.service.DefineAccount(s.ctx, testTenant, "chart-1", dto.DefineAccountRequest{
		Code: "1000", Name: "Cash again", AccountType: domain.Asset, CurrencyCode: "USD", IsPosting: true,
	}, testActor)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.chartRepo.AssertNotCalled(s.T(), "SaveChart", mock.Anything, mock.Anything)
}
