package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) GetLedger(ctx context.Context, tenantID, ledgerID string) (*domain.Ledger, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ledger), args.Error(1)
}

func (m *MockLedgerService) GetChart(ctx context.Context, tenantID, chartID string) (*domain.ChartOfAccounts, error) {
	args := m.Called(ctx, tenantID, chartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccounts), args.Error(1)
}

func (m *MockLedgerService) CreateLedger(ctx context.Context, tenantID string, req dto.CreateLedgerRequest, actor string) (*domain.Ledger, *domain.ChartOfAccounts, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Ledger), args.Get(1).(*domain.ChartOfAccounts), args.Error(2)
}

func (m *MockLedgerService) DefineAccount(ctx context.Context, tenantID, chartID string, req dto.DefineAccountRequest, actor string) (*domain.ChartOfAccounts, error) {
	args := m.Called(ctx, tenantID, chartID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccounts), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

type MockPeriodService struct{ mock.Mock }

func (m *MockPeriodService) period(args mock.Arguments) (*domain.AccountingPeriod, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) OpenPeriod(ctx context.Context, tenantID, ledgerID string, req dto.OpenPeriodRequest, actor string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, ledgerID, req, actor))
}

func (m *MockPeriodService) ClosePeriod(ctx context.Context, tenantID, ledgerID, periodID string, freezeOnly bool, actor string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, ledgerID, periodID, freezeOnly, actor))
}

func (m *MockPeriodService) ReopenPeriod(ctx context.Context, tenantID, ledgerID, periodID string, actor string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, ledgerID, periodID, actor))
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID))
}

func (m *MockPeriodService) ListOpenPeriods(ctx context.Context, tenantID, ledgerID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID, ledgerID)
	periods, _ := args.Get(0).([]domain.AccountingPeriod)
	return periods, args.Error(1)
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

type MockJournalService struct{ mock.Mock }

func (m *MockJournalService) GetJournalEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostJournalEntry(ctx context.Context, tenantID string, req dto.PostJournalEntryRequest, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

type MockRevaluationService struct{ mock.Mock }

func (m *MockRevaluationService) RunRevaluation(ctx context.Context, tenantID string, req dto.RunRevaluationRequest, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

type MockDimensionService struct{ mock.Mock }

func (m *MockDimensionService) UpsertDimension(ctx context.Context, tenantID string, req dto.UpsertDimensionRequest, actor string) (*domain.AccountingDimension, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingDimension), args.Error(1)
}

func (m *MockDimensionService) GetDimension(ctx context.Context, tenantID, dimensionID string) (*domain.AccountingDimension, error) {
	args := m.Called(ctx, tenantID, dimensionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingDimension), args.Error(1)
}

func (m *MockDimensionService) ListDimensions(ctx context.Context, tenantID string, params dto.ListDimensionsParams) ([]domain.AccountingDimension, error) {
	args := m.Called(ctx, tenantID, params)
	dims, _ := args.Get(0).([]domain.AccountingDimension)
	return dims, args.Error(1)
}

type MockPolicyService struct{ mock.Mock }

func (m *MockPolicyService) EnsurePolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID)
	policies, _ := args.Get(0).([]domain.AccountDimensionPolicy)
	return policies, args.Error(1)
}

func (m *MockPolicyService) UpsertPolicy(ctx context.Context, tenantID string, req dto.UpsertPolicyRequest) (*domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountDimensionPolicy), args.Error(1)
}

func (m *MockPolicyService) ListPolicies(ctx context.Context, tenantID string) ([]domain.AccountDimensionPolicy, error) {
	args := m.Called(ctx, tenantID)
	policies, _ := args.Get(0).([]domain.AccountDimensionPolicy)
	return policies, args.Error(1)
}

type MockControlAccountService struct{ mock.Mock }

func (m *MockControlAccountService) Resolve(ctx context.Context, tenantID, companyCodeID string, subLedger domain.SubLedger, category domain.ControlAccountCategory, dimensions domain.DimensionAssignments, currency string) (string, error) {
	args := m.Called(ctx, tenantID, companyCodeID, subLedger, category, dimensions, currency)
	return args.String(0), args.Error(1)
}

func (m *MockControlAccountService) ResolvePayablesAccount(ctx context.Context, tenantID, companyCodeID string, dimensions domain.DimensionAssignments, currency string) (string, error) {
	args := m.Called(ctx, tenantID, companyCodeID, dimensions, currency)
	return args.String(0), args.Error(1)
}

func (m *MockControlAccountService) ResolveReceivablesAccount(ctx context.Context, tenantID, companyCodeID string, dimensions domain.DimensionAssignments, currency string) (string, error) {
	args := m.Called(ctx, tenantID, companyCodeID, dimensions, currency)
	return args.String(0), args.Error(1)
}

func (m *MockControlAccountService) SaveControlAccount(ctx context.Context, tenantID string, req dto.SaveControlAccountRequest, actor string) (*domain.ControlAccountConfig, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ControlAccountConfig), args.Error(1)
}

type MockCurrencyService struct{ mock.Mock }

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	currencies, _ := args.Get(0).([]domain.Currency)
	return currencies, args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

type MockExchangeRateService struct{ mock.Mock }

func (m *MockExchangeRateService) FindRate(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, quoteCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// MockLocker runs fn unless an error is configured for the key.
type MockLocker struct{ mock.Mock }

func (m *MockLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := m.Called(ctx, key).Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
