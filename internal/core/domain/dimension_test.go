package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestDimensionAssignments(t *testing.T) {
	a := domain.DimensionAssignments{CostCenterID: "cc-1", ProjectID: "pr-9"}

	id, ok := a.Get(domain.CostCenter)
	assert.True(t, ok)
	assert.Equal(t, "cc-1", id)
	_, ok = a.Get(domain.Department)
	assert.False(t, ok)
	assert.Equal(t, []domain.DimensionType{domain.CostCenter, domain.Project}, a.Present())
	assert.False(t, a.IsEmpty())
	assert.True(t, domain.DimensionAssignments{}.IsEmpty())
}

func TestAccountingDimension_IsActiveOn(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  domain.DimensionStatus
		validTo *time.Time
		on      time.Time
		want    bool
	}{
		{"inside window", domain.DimensionActive, &to, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), true},
		{"first day", domain.DimensionActive, &to, from, true},
		{"late on last day", domain.DimensionActive, &to, time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), true},
		{"day after", domain.DimensionActive, &to, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), false},
		{"before start", domain.DimensionActive, &to, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), false},
		{"open ended", domain.DimensionActive, nil, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"draft", domain.DimensionDraft, nil, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"retired", domain.DimensionRetired, nil, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.AccountingDimension{Status: tt.status, ValidFrom: from, ValidTo: tt.validTo}
			assert.Equal(t, tt.want, d.IsActiveOn(tt.on))
		})
	}
}

func TestAccountingDimension_Validate(t *testing.T) {
	from := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	before := from.AddDate(0, 0, -1)

	valid := domain.AccountingDimension{Type: domain.CostCenter, Code: "CC1", Name: "Ops", Status: domain.DimensionDraft, ValidFrom: from}
	assert.NoError(t, valid.Validate())

	blank := valid
	blank.Code = " "
	assert.ErrorIs(t, blank.Validate(), apperrors.ErrValidation)

	inverted := valid
	inverted.ValidTo = &before
	assert.ErrorIs(t, inverted.Validate(), apperrors.ErrValidation)
}

func TestDimensionValidationError_Unwrap(t *testing.T) {
	err := error(&domain.DimensionValidationError{
		Reason:        domain.ReasonMandatoryMissing,
		DimensionType: domain.CostCenter,
		AccountType:   domain.Expense,
		BookingDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, apperrors.ErrMandatoryDimensionMissing)
	var dve *domain.DimensionValidationError
	assert.True(t, errors.As(err, &dve))
	assert.Equal(t, domain.Expense, dve.AccountType)
}

func TestDefaultDimensionPolicies(t *testing.T) {
	n := 0
	policies := domain.DefaultDimensionPolicies("t-1", func() string { n++; return "id" })

	assert.Len(t, policies, 25)
	assert.Equal(t, 25, n)

	matrix := domain.NewPolicyMatrix(policies)
	assert.Equal(t, []domain.DimensionType{domain.CostCenter}, matrix.MandatoryFor(domain.Expense))
	assert.Equal(t, []domain.DimensionType{domain.CostCenter}, matrix.MandatoryFor(domain.Revenue))
	assert.Empty(t, matrix.MandatoryFor(domain.Asset))
	assert.Empty(t, matrix.MandatoryFor(domain.Liability))
}

func TestDimensionChangeAction(t *testing.T) {
	active := &domain.AccountingDimension{Status: domain.DimensionActive}
	draft := &domain.AccountingDimension{Status: domain.DimensionDraft}
	retired := &domain.AccountingDimension{Status: domain.DimensionRetired}

	assert.Equal(t, domain.DimensionActionCreated, domain.DimensionChangeAction(false, active))
	assert.Equal(t, domain.DimensionActionUpdated, domain.DimensionChangeAction(true, active))
	assert.Equal(t, domain.DimensionActionUpdated, domain.DimensionChangeAction(false, draft))
	assert.Equal(t, domain.DimensionActionRetired, domain.DimensionChangeAction(false, retired))
}
