package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		LedgerID:          d.LedgerID,
		TenantID:          d.TenantID,
		ChartOfAccountsID: d.ChartOfAccountsID,
		BaseCurrency:      d.BaseCurrency,
		Status:            string(d.Status),
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:          m.LedgerID,
		TenantID:          m.TenantID,
		ChartOfAccountsID: m.ChartOfAccountsID,
		BaseCurrency:      m.BaseCurrency,
		Status:            domain.LedgerStatus(m.Status),
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelChart splits a chart into its header row and account rows.
func ToModelChart(d domain.ChartOfAccounts) (models.ChartOfAccounts, []models.Account) {
	header := models.ChartOfAccounts{
		ChartID:      d.ChartID,
		TenantID:     d.TenantID,
		Code:         d.Code,
		Name:         d.Name,
		BaseCurrency: d.BaseCurrency,
		Version:      d.Version,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	accounts := make([]models.Account, 0, len(d.Accounts))
	for _, a := range d.Accounts {
		accounts = append(accounts, models.Account{
			AccountID:       a.AccountID,
			ChartID:         d.ChartID,
			Code:            a.Code,
			Name:            a.Name,
			AccountType:     string(a.AccountType),
			CurrencyCode:    a.CurrencyCode,
			ParentAccountID: nullable(a.ParentAccountID),
			IsPosting:       a.IsPosting,
		})
	}
	return header, accounts
}

// ToDomainChart assembles a chart from its header and account rows.
func ToDomainChart(m models.ChartOfAccounts, accounts []models.Account) domain.ChartOfAccounts {
	chart := domain.ChartOfAccounts{
		ChartID:      m.ChartID,
		TenantID:     m.TenantID,
		Code:         m.Code,
		Name:         m.Name,
		BaseCurrency: m.BaseCurrency,
		Accounts:     make(map[string]domain.Account, len(accounts)),
		Version:      m.Version,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	for _, a := range accounts {
		chart.Accounts[a.AccountID] = domain.Account{
			AccountID:       a.AccountID,
			Code:            a.Code,
			Name:            a.Name,
			AccountType:     domain.AccountType(a.AccountType),
			CurrencyCode:    a.CurrencyCode,
			ParentAccountID: deref(a.ParentAccountID),
			IsPosting:       a.IsPosting,
		}
	}
	return chart
}

func ToModelPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:    d.PeriodID,
		LedgerID:    d.LedgerID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      string(d.Status),
		Version:     d.Version,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:    m.PeriodID,
		LedgerID:    m.LedgerID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		StartDate:   domain.StartOfDayUTC(m.StartDate),
		EndDate:     domain.StartOfDayUTC(m.EndDate),
		Status:      domain.PeriodStatus(m.Status),
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainPeriodSlice(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	ds := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}
