package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Unit of work ---

// fakeUnitOfWork runs fn inline and counts transactions.
type fakeUnitOfWork struct {
	calls  int
	active bool
}

var _ portsrepo.UnitOfWork = (*fakeUnitOfWork)(nil)

func (u *fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	u.active = true
	defer func() { u.active = false }()
	return fn(ctx)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindLedgerByID(ctx context.Context, tenantID, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) (*domain.Ledger, error) {
	args := m.Called(ctx, ledger)
	if rf, ok := args.Get(0).(func(context.Context, domain.Ledger) *domain.Ledger); ok {
		return rf(ctx, ledger), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

// --- Mock ChartRepository ---
type MockChartRepository struct {
	mock.Mock
}

var _ portsrepo.ChartRepositoryFacade = (*MockChartRepository)(nil)

func (m *MockChartRepository) FindChartByID(ctx context.Context, tenantID, chartID string) (*domain.ChartOfAccounts, error) {
	args := m.Called(ctx, tenantID, chartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccounts), args.Error(1)
}

func (m *MockChartRepository) SaveChart(ctx context.Context, chart domain.ChartOfAccounts) (*domain.ChartOfAccounts, error) {
	args := m.Called(ctx, chart)
	if rf, ok := args.Get(0).(func(context.Context, domain.ChartOfAccounts) *domain.ChartOfAccounts); ok {
		return rf(ctx, chart), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccounts), args.Error(1)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByLedger(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpenPeriodsByLedger(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, period)
	if rf, ok := args.Get(0).(func(context.Context, domain.AccountingPeriod) *domain.AccountingPeriod); ok {
		return rf(ctx, period), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindPostedByLedgerAndPeriod(ctx context.Context, tenantID, ledgerID, periodID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, ledgerID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if rf, ok := args.Get(0).(func(context.Context, domain.JournalEntry) *domain.JournalEntry); ok {
		return rf(ctx, entry), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock DimensionRepository ---
type MockDimensionRepository struct {
	mock.Mock
}

var _ portsrepo.DimensionRepositoryFacade = (*MockDimensionRepository)(nil)

func (m *MockDimensionRepository) FindDimensionByID(ctx context.Context, tenantID, dimensionID string) (*domain.AccountingDimension, error) {
	args := m.Called(ctx, tenantID, dimensionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingDimension), args.Error(1)
}

func (m *MockDimensionRepository) FindDimensionsByIDs(ctx context.Context, tenantID string, dimensionType domain.DimensionType, ids []string) (map[string]domain.AccountingDimension, error) {
	args := m.Called(ctx, tenantID, dimensionType, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountingDimension), args.Error(1)
}

func (m *MockDimensionRepository) ListDimensions(ctx context.Context, tenantID string, filter portsrepo.DimensionFilter) ([]domain.AccountingDimension, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingDimension), args.Error(1)
}

func (m *MockDimensionRepository) SaveDimension(ctx context.Context, dimension domain.AccountingDimension) (*domain.AccountingDimension, error) {
	args := m.Called(ctx, dimension)
	if rf, ok := args.Get(0).(func(context.Context, domain.AccountingDimension) *domain.AccountingDimension); ok {
		return rf(ctx, dimension), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingDimension), args.Error(1)
}

// --- Mock PolicyRepository ---
type MockPolicyRepository struct {
	mock.Mock
}

var _ portsrepo.PolicyRepositoryFacade = (*MockPolicyRepository)(nil)

// MockCachingPolicyRepository is a policy store fronted by a tenant cache.
type MockCachingPolicyRepository struct {
	MockPolicyRepository
}

var _ portsrepo.PolicyCacheInvalidator = (*MockCachingPolicyRepository)(nil)

func (m *MockCachingPolicyRepository) InvalidatePolicies(ctx context.Context, tenantID string) {
	m.Called(ctx, tenantID)
}

func (m *MockPolicyRepository) FindPoliciesByTenant(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountDimensionPolicy), args.Error(1)
}

func (m *MockPolicyRepository) SavePolicies(ctx context.Context, policies []domain.AccountDimensionPolicy) error {
	args := m.Called(ctx, policies)
	return args.Error(0)
}

func (m *MockPolicyRepository) DeletePolicy(ctx context.Context, tenantID string, dimensionType domain.DimensionType, accountType domain.AccountType) error {
	args := m.Called(ctx, tenantID, dimensionType, accountType)
	return args.Error(0)
}

// --- Mock ControlAccountRepository ---
type MockControlAccountRepository struct {
	mock.Mock
}

var _ portsrepo.ControlAccountRepositoryFacade = (*MockControlAccountRepository)(nil)

func (m *MockControlAccountRepository) FindControlAccount(ctx context.Context, key domain.ControlAccountKey) (*domain.ControlAccountConfig, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ControlAccountConfig), args.Error(1)
}

func (m *MockControlAccountRepository) SaveControlAccount(ctx context.Context, config domain.ControlAccountConfig) (*domain.ControlAccountConfig, error) {
	args := m.Called(ctx, config)
	if rf, ok := args.Get(0).(func(context.Context, domain.ControlAccountConfig) *domain.ControlAccountConfig); ok {
		return rf(ctx, config), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ControlAccountConfig), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, quoteCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock OutboxRepository ---
type MockOutboxRepository struct {
	mock.Mock
}

var _ portsrepo.OutboxRepositoryFacade = (*MockOutboxRepository)(nil)

func (m *MockOutboxRepository) SaveOutboxEvent(ctx context.Context, event domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, eventID string, publishedAt time.Time) error {
	args := m.Called(ctx, eventID, publishedAt)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, eventID string, errMsg string, maxAttempts int) error {
	args := m.Called(ctx, eventID, errMsg, maxAttempts)
	return args.Error(0)
}

func (m *MockOutboxRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOutboxRepository) DeletePublishedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishJournalPosted(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishPeriodUpdated(ctx context.Context, period *domain.AccountingPeriod, previous domain.PeriodStatus) error {
	args := m.Called(ctx, period, previous)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishDimensionChanged(ctx context.Context, dimension *domain.AccountingDimension, action domain.DimensionAction) error {
	args := m.Called(ctx, dimension, action)
	return args.Error(0)
}

// --- Mock MetricsSink ---
type MockMetricsSink struct {
	mock.Mock
}

var _ portssvc.MetricsSink = (*MockMetricsSink)(nil)

func (m *MockMetricsSink) RecordDimensionValidationFailure(ctx context.Context, reason domain.DimensionFailureReason, dimensionType domain.DimensionType, accountType domain.AccountType) {
	m.Called(ctx, reason, dimensionType, accountType)
}

func (m *MockMetricsSink) RecordOrphanLine(ctx context.Context, accountType domain.AccountType) {
	m.Called(ctx, accountType)
}

func (m *MockMetricsSink) RecordJournalPosted(ctx context.Context, lines int) {
	m.Called(ctx, lines)
}

func (m *MockMetricsSink) RecordPeriodTransition(ctx context.Context, status domain.PeriodStatus) {
	m.Called(ctx, status)
}

func (m *MockMetricsSink) RecordRevaluation(ctx context.Context) {
	m.Called(ctx)
}

// --- Mock ExchangeRateProvider ---
type MockExchangeRateProvider struct {
	mock.Mock
}

var _ portssvc.ExchangeRateProvider = (*MockExchangeRateProvider)(nil)

func (m *MockExchangeRateProvider) FindRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, quoteCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock DimensionValidator ---
type MockDimensionValidator struct {
	mock.Mock
}

var _ portssvc.DimensionValidator = (*MockDimensionValidator)(nil)

func (m *MockDimensionValidator) ValidateAssignments(ctx context.Context, tenantID string, bookedAt time.Time, lines []domain.DimensionValidationLine) error {
	args := m.Called(ctx, tenantID, bookedAt, lines)
	return args.Error(0)
}

// --- Mock DimensionPolicyService ---
type MockDimensionPolicyService struct {
	mock.Mock
}

var _ portssvc.DimensionPolicySvcFacade = (*MockDimensionPolicyService)(nil)

func (m *MockDimensionPolicyService) EnsurePolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountDimensionPolicy), args.Error(1)
}

func (m *MockDimensionPolicyService) UpsertPolicy(ctx context.Context, tenantID string, req dto.UpsertPolicyRequest) (*domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountDimensionPolicy), args.Error(1)
}

func (m *MockDimensionPolicyService) ListPolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountDimensionPolicy), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

var _ portssvc.CurrencyReaderSvc = (*MockCurrencyService)(nil)

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// Save* mocks accept these to echo the persisted value back.
func echoLedger(_ context.Context, l domain.Ledger) *domain.Ledger { return &l }

func echoChart(_ context.Context, c domain.ChartOfAccounts) *domain.ChartOfAccounts { return &c }

func echoPeriod(_ context.Context, p domain.AccountingPeriod) *domain.AccountingPeriod { return &p }

func echoEntry(_ context.Context, e domain.JournalEntry) *domain.JournalEntry { return &e }

func echoDimension(_ context.Context, d domain.AccountingDimension) *domain.AccountingDimension {
	return &d
}
