package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testTenant = "tenant-1"
	testActor  = "user-1"
)

// JournalServiceTestSuite defines the test suite for JournalService
type JournalServiceTestSuite struct {
	suite.Suite
	uow         *fakeUnitOfWork
	ledgerRepo  *MockLedgerRepository
	chartRepo   *MockChartRepository
	periodRepo  *MockPeriodRepository
	journalRepo *MockJournalRepository
	rates       *MockExchangeRateProvider
	validator   *MockDimensionValidator
	publisher   *MockEventPublisher
	metrics     *MockMetricsSink
	service     portssvc.JournalSvcFacade

	ctx      context.Context
	ledger   *domain.Ledger
	chart    *domain.ChartOfAccounts
	bookedAt time.Time
}

// SetupTest runs before each test in the suite
func (s *JournalServiceTestSuite) SetupTest() {
	s.uow = &fakeUnitOfWork{}
	s.ledgerRepo = new(MockLedgerRepository)
	s.chartRepo = new(MockChartRepository)
	s.periodRepo = new(MockPeriodRepository)
	s.journalRepo = new(MockJournalRepository)
	s.rates = new(MockExchangeRateProvider)
	s.validator = new(MockDimensionValidator)
	s.publisher = new(MockEventPublisher)
	s.metrics = new(MockMetricsSink)

	s.service = services.NewJournalService(portsrepo.RepositoryProvider{
		UnitOfWork:  s.uow,
		LedgerRepo:  s.ledgerRepo,
		ChartRepo:   s.chartRepo,
		PeriodRepo:  s.periodRepo,
		JournalRepo: s.journalRepo,
	}, s.rates, s.validator, s.publisher, s.metrics)

	s.ctx = context.Background()
	s.bookedAt = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	s.ledger = &domain.Ledger{
		LedgerID:          "ledger-1",
		TenantID:          testTenant,
		ChartOfAccountsID: "chart-1",
		BaseCurrency:      "USD",
		Status:            domain.LedgerActive,
	}
	s.chart = &domain.ChartOfAccounts{
		ChartID:      "chart-1",
		TenantID:     testTenant,
		BaseCurrency: "USD",
		Accounts: map[string]domain.Account{
			"cash":     {AccountID: "cash", Code: "1000", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "USD", IsPosting: true},
			"eur-bank": {AccountID: "eur-bank", Code: "1010", Name: "EUR Bank", AccountType: domain.Asset, CurrencyCode: "EUR", IsPosting: true},
			"sales":    {AccountID: "sales", Code: "4000", Name: "Sales", AccountType: domain.Revenue, CurrencyCode: "USD", IsPosting: true},
			"assets":   {AccountID: "assets", Code: "1", Name: "Assets", AccountType: domain.Asset, CurrencyCode: "USD"},
		},
	}
}

func (s *JournalServiceTestSuite) openPeriod(status domain.PeriodStatus) {
	s.ledgerRepo.On("FindLedgerByID", mock.Anything, testTenant, "ledger-1").Return(s.ledger, nil)
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenant, "period-1").Return(&domain.AccountingPeriod{
		PeriodID: "period-1",
		LedgerID: "ledger-1",
		TenantID: testTenant,
		Code:     "2025-03",
		Status:   status,
	}, nil)
}

func (s *JournalServiceTestSuite) request(lines ...dto.JournalLineRequest) dto.PostJournalEntryRequest {
	return dto.PostJournalEntryRequest{
		LedgerID:  "ledger-1",
		PeriodID:  "period-1",
		Reference: "INV-42",
		BookedAt:  s.bookedAt,
		Lines:     lines,
	}
}

func line(account string, dir domain.EntryDirection, amount int64, currency string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: account, Direction: dir, AmountMinor: amount, Currency: currency}
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_BaseCurrency() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)
	s.validator.On("ValidateAssignments", mock.Anything, testTenant, s.bookedAt, mock.MatchedBy(func(lines []domain.DimensionValidationLine) bool {
		return len(lines) == 2 && lines[0].AccountType == domain.Asset && lines[1].AccountType == domain.Revenue
	})).Return(nil).Once()
	s.journalRepo.On("SaveJournalEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(echoEntry, nil).Once()
	s.publisher.On("PublishJournalPosted", mock.Anything, mock.AnythingOfType("*domain.JournalEntry")).Return(nil).Once()
	s.metrics.On("RecordJournalPosted", mock.Anything, 2).Once()

	entry, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("cash", domain.Debit, 50000, ""),
		line("sales", domain.Credit, 50000, "usd"),
	), testActor)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(domain.JournalPosted, entry.Status)
	s.NotNil(entry.PostedAt)
	s.Equal("INV-42", entry.Reference)
	s.Equal(testActor, entry.CreatedBy)
	s.Require().Len(entry.Lines, 2)
	for _, l := range entry.Lines {
		s.Equal(domain.Money{AmountMinor: 50000, Currency: "USD"}, l.Amount)
		s.False(l.IsForeign())
		s.NotEmpty(l.LineID)
	}
	s.Equal(1, s.uow.calls)
	s.rates.AssertNotCalled(s.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.journalRepo.AssertExpectations(s.T())
	s.publisher.AssertExpectations(s.T())
	s.metrics.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_ForeignLineConvertedToBase() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)
	s.rates.On("FindRate", mock.Anything, "EUR", "USD", s.bookedAt).
		Return(&domain.ExchangeRate{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.RequireFromString("1.20")}, nil).Once()
	s.validator.On("ValidateAssignments", mock.Anything, testTenant, s.bookedAt, mock.Anything).Return(nil)
	s.journalRepo.On("SaveJournalEntry", mock.Anything, mock.Anything).Return(echoEntry, nil)
	s.publisher.On("PublishJournalPosted", mock.Anything, mock.Anything).Return(nil)
	s.metrics.On("RecordJournalPosted", mock.Anything, 2)

	entry, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("eur-bank", domain.Debit, 100000, "EUR"),
		line("sales", domain.Credit, 120000, ""),
	), testActor)

	s.Require().NoError(err)
	foreign := entry.Lines[0]
	s.Equal(domain.Money{AmountMinor: 120000, Currency: "USD"}, foreign.Amount)
	s.Equal(domain.Money{AmountMinor: 100000, Currency: "EUR"}, foreign.OriginalAmount)
	s.Equal("EUR", foreign.OriginalCurrency)
	s.True(foreign.IsForeign())

	debit, credit, err := entry.Totals()
	s.Require().NoError(err)
	s.Equal(debit, credit)
	s.rates.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_UnbalancedAfterConversion() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)
	s.rates.On("FindRate", mock.Anything, "EUR", "USD", s.bookedAt).
		Return(&domain.ExchangeRate{BaseCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.RequireFromString("1.20")}, nil).Once()

	entry, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("eur-bank", domain.Debit, 100000, "EUR"),
		line("sales", domain.Credit, 100000, "USD"),
	), testActor)

	s.Require().ErrorIs(err, apperrors.ErrUnbalancedEntry)
	s.Nil(entry)
	s.journalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
	s.publisher.AssertNotCalled(s.T(), "PublishJournalPosted", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_Unbalanced() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)

	entry, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("cash", domain.Debit, 10000, ""),
		line("sales", domain.Credit, 9000, ""),
	), testActor)

	s.Require().Error(err)
	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	s.journalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
	s.publisher.AssertNotCalled(s.T(), "PublishJournalPosted", mock.Anything, mock.Anything)
	s.validator.AssertNotCalled(s.T(), "ValidateAssignments", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_SingleSided() {
	s.openPeriod(domain.PeriodOpen)

	_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("cash", domain.Debit, 10000, ""),
		line("sales", domain.Debit, 10000, ""),
	), testActor)

	s.ErrorIs(err, apperrors.ErrUnbalancedEntryStructure)
	s.chartRepo.AssertNotCalled(s.T(), "FindChartByID", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_PeriodNotOpen() {
	for _, status := range []domain.PeriodStatus{domain.PeriodFrozen, domain.PeriodClosed} {
		s.Run(string(status), func() {
			s.SetupTest()
			s.openPeriod(status)

			_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
				line("cash", domain.Debit, 100, ""),
				line("sales", domain.Credit, 100, ""),
			), testActor)

			s.ErrorIs(err, apperrors.ErrPeriodClosed)
			s.journalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
		})
	}
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_PeriodOfAnotherLedger() {
	s.ledgerRepo.On("FindLedgerByID", mock.Anything, testTenant, "ledger-1").Return(s.ledger, nil)
	s.periodRepo.On("FindPeriodByID", mock.Anything, testTenant, "period-1").
		Return(&domain.AccountingPeriod{PeriodID: "period-1", LedgerID: "ledger-2", Status: domain.PeriodOpen}, nil)

	_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("cash", domain.Debit, 100, ""),
		line("sales", domain.Credit, 100, ""),
	), testActor)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_NonPostingAccount() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)

	_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("assets", domain.Debit, 100, ""),
		line("sales", domain.Credit, 100, ""),
	), testActor)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_UnknownAccount() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)

	_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("nope", domain.Debit, 100, ""),
		line("sales", domain.Credit, 100, ""),
	), testActor)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_RateUnavailable() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)
	s.rates.On("FindRate", mock.Anything, "EUR", "USD", s.bookedAt).
		Return(nil, fmt.Errorf("%w: no rate EUR/USD", apperrors.ErrRateUnavailable))

	_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("eur-bank", domain.Debit, 100, "EUR"),
		line("sales", domain.Credit, 120, ""),
	), testActor)

	s.ErrorIs(err, apperrors.ErrRateUnavailable)
	s.Contains(err.Error(), "line 1")
	s.journalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_DimensionRejected() {
	s.openPeriod(domain.PeriodOpen)
	s.chartRepo.On("FindChartByID", mock.Anything, testTenant, "chart-1").Return(s.chart, nil)
	s.validator.On("ValidateAssignments", mock.Anything, testTenant, s.bookedAt, mock.Anything).
		Return(&domain.DimensionValidationError{Reason: domain.ReasonMandatoryMissing, DimensionType: domain.CostCenter, AccountType: domain.Revenue})

	_, err := s.service.PostJournalEntry(s.ctx, testTenant, s.request(
		line("cash", domain.Debit, 100, ""),
		line("sales", domain.Credit, 100, ""),
	), testActor)

	s.ErrorIs(err, apperrors.ErrMandatoryDimensionMissing)
	s.journalRepo.AssertNotCalled(s.T(), "SaveJournalEntry", mock.Anything, mock.Anything)
	s.metrics.AssertNotCalled(s.T(), "RecordJournalPosted", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestGetJournalEntry() {
	expected := &domain.JournalEntry{EntryID: "entry-1", TenantID: testTenant}
	s.journalRepo.On("FindJournalEntryByID", s.ctx, testTenant, "entry-1").Return(expected, nil).Once()

	entry, err := s.service.GetJournalEntry(s.ctx, testTenant, "entry-1")

	s.Require().NoError(err)
	s.Equal(expected, entry)
	s.journalRepo.AssertExpectations(s.T())
}
