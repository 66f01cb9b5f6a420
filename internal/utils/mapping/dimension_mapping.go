package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

func ToModelDimension(d domain.AccountingDimension) models.AccountingDimension {
	return models.AccountingDimension{
		DimensionID:   d.DimensionID,
		TenantID:      d.TenantID,
		CompanyCodeID: d.CompanyCodeID,
		Type:          string(d.Type),
		Code:          d.Code,
		Name:          d.Name,
		Description:   d.Description,
		ParentID:      nullable(d.ParentID),
		Status:        string(d.Status),
		ValidFrom:     d.ValidFrom,
		ValidTo:       d.ValidTo,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainDimension(m models.AccountingDimension) domain.AccountingDimension {
	d := domain.AccountingDimension{
		DimensionID:   m.DimensionID,
		TenantID:      m.TenantID,
		CompanyCodeID: m.CompanyCodeID,
		Type:          domain.DimensionType(m.Type),
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		ParentID:      deref(m.ParentID),
		Status:        domain.DimensionStatus(m.Status),
		ValidFrom:     m.ValidFrom.UTC(),
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ValidTo != nil {
		validTo := m.ValidTo.UTC()
		d.ValidTo = &validTo
	}
	return d
}

func ToDomainDimensionSlice(ms []models.AccountingDimension) []domain.AccountingDimension {
	ds := make([]domain.AccountingDimension, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDimension(m)
	}
	return ds
}

func ToModelPolicy(d domain.AccountDimensionPolicy) models.AccountDimensionPolicy {
	return models.AccountDimensionPolicy{
		PolicyID:      d.PolicyID,
		TenantID:      d.TenantID,
		AccountType:   string(d.AccountType),
		DimensionType: string(d.DimensionType),
		Requirement:   string(d.Requirement),
	}
}

func ToDomainPolicy(m models.AccountDimensionPolicy) domain.AccountDimensionPolicy {
	return domain.AccountDimensionPolicy{
		PolicyID:      m.PolicyID,
		TenantID:      m.TenantID,
		AccountType:   domain.AccountType(m.AccountType),
		DimensionType: domain.DimensionType(m.DimensionType),
		Requirement:   domain.DimensionRequirement(m.Requirement),
	}
}

func ToModelControlAccount(d domain.ControlAccountConfig) models.ControlAccountConfig {
	return models.ControlAccountConfig{
		ConfigID:      d.ConfigID,
		TenantID:      d.TenantID,
		CompanyCodeID: d.CompanyCodeID,
		SubLedger:     string(d.SubLedger),
		Category:      string(d.Category),
		DimensionKey:  d.DimensionKey,
		Currency:      d.Currency,
		GLAccountID:   d.GLAccountID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainControlAccount(m models.ControlAccountConfig) domain.ControlAccountConfig {
	return domain.ControlAccountConfig{
		ConfigID:      m.ConfigID,
		TenantID:      m.TenantID,
		CompanyCodeID: m.CompanyCodeID,
		SubLedger:     domain.SubLedger(m.SubLedger),
		Category:      domain.ControlAccountCategory(m.Category),
		DimensionKey:  m.DimensionKey,
		Currency:      m.Currency,
		GLAccountID:   m.GLAccountID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
