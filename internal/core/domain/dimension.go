package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
)

// DimensionType is the closed set of analytical dimensions a line can carry.
type DimensionType string

const (
	CostCenter   DimensionType = "COST_CENTER"
	ProfitCenter DimensionType = "PROFIT_CENTER"
	Department   DimensionType = "DEPARTMENT"
	Project      DimensionType = "PROJECT"
	BusinessArea DimensionType = "BUSINESS_AREA"
)

// DimensionTypes lists every dimension type in a fixed order.
func DimensionTypes() []DimensionType {
	return []DimensionType{CostCenter, ProfitCenter, Department, Project, BusinessArea}
}

func (t DimensionType) Valid() bool {
	switch t {
	case CostCenter, ProfitCenter, Department, Project, BusinessArea:
		return true
	}
	return false
}

// DimensionAssignments holds the optional dimension references of a journal line.
type DimensionAssignments struct {
	CostCenterID   string `json:"costCenterID,omitempty"`
	ProfitCenterID string `json:"profitCenterID,omitempty"`
	DepartmentID   string `json:"departmentID,omitempty"`
	ProjectID      string `json:"projectID,omitempty"`
	BusinessAreaID string `json:"businessAreaID,omitempty"`
}

// Get returns the id assigned for t, if any.
func (a DimensionAssignments) Get(t DimensionType) (string, bool) {
	var id string
	switch t {
	case CostCenter:
		id = a.CostCenterID
	case ProfitCenter:
		id = a.ProfitCenterID
	case Department:
		id = a.DepartmentID
	case Project:
		id = a.ProjectID
	case BusinessArea:
		id = a.BusinessAreaID
	}
	return id, id != ""
}

// IsEmpty reports whether no dimension is assigned.
func (a DimensionAssignments) IsEmpty() bool {
	return len(a.Present()) == 0
}

// Present lists the assigned dimension types in fixed order.
func (a DimensionAssignments) Present() []DimensionType {
	var out []DimensionType
	for _, t := range DimensionTypes() {
		if _, ok := a.Get(t); ok {
			out = append(out, t)
		}
	}
	return out
}

// DimensionStatus is the lifecycle status of a dimension.
type DimensionStatus string

const (
	DimensionDraft   DimensionStatus = "DRAFT"
	DimensionActive  DimensionStatus = "ACTIVE"
	DimensionRetired DimensionStatus = "RETIRED"
)

func (s DimensionStatus) Valid() bool {
	switch s {
	case DimensionDraft, DimensionActive, DimensionRetired:
		return true
	}
	return false
}

// AccountingDimension is a master-data record for one analytical tag.
type AccountingDimension struct {
	DimensionID   string          `json:"dimensionID"`
	TenantID      string          `json:"tenantID"`
	CompanyCodeID string          `json:"companyCodeID"`
	Type          DimensionType   `json:"type"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	ParentID      string          `json:"parentID,omitempty"`
	Status        DimensionStatus `json:"status"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidTo       *time.Time      `json:"validTo,omitempty"` // open-ended when nil
	Version       int64           `json:"version"`
	AuditFields
}

// Validate enforces the record's structural rules.
func (d *AccountingDimension) Validate() error {
	if strings.TrimSpace(d.Code) == "" {
		return fmt.Errorf("%w: dimension code must not be blank", apperrors.ErrValidation)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: dimension name must not be blank", apperrors.ErrValidation)
	}
	if !d.Type.Valid() {
		return fmt.Errorf("%w: unknown dimension type %q", apperrors.ErrValidation, d.Type)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("%w: unknown dimension status %q", apperrors.ErrValidation, d.Status)
	}
	if d.ValidTo != nil && StartOfDayUTC(*d.ValidTo).Before(StartOfDayUTC(d.ValidFrom)) {
		return fmt.Errorf("%w: validTo precedes validFrom", apperrors.ErrValidation)
	}
	return nil
}

// IsActiveOn reports whether the dimension is ACTIVE and its window covers the calendar day of on (UTC).
func (d *AccountingDimension) IsActiveOn(on time.Time) bool {
	if d.Status != DimensionActive {
		return false
	}
	day := StartOfDayUTC(on)
	if day.Before(StartOfDayUTC(d.ValidFrom)) {
		return false
	}
	return d.ValidTo == nil || !day.After(StartOfDayUTC(*d.ValidTo))
}

func (d *AccountingDimension) Activate() { d.Status = DimensionActive }
func (d *AccountingDimension) Retire()   { d.Status = DimensionRetired }

// DimensionValidationLine is the view of a journal line the validator needs.
type DimensionValidationLine struct {
	AccountID   string
	AccountType AccountType
	Dimensions  DimensionAssignments
}

// DimensionFailureReason names why a line's dimensions were rejected.
type DimensionFailureReason string

const (
	ReasonNotFound         DimensionFailureReason = "NOT_FOUND"
	ReasonInactive         DimensionFailureReason = "INACTIVE"
	ReasonMandatoryMissing DimensionFailureReason = "MANDATORY_MISSING"
)

// DimensionValidationError describes the first dimension failure of a validation call.
type DimensionValidationError struct {
	Reason        DimensionFailureReason
	DimensionType DimensionType
	AccountType   AccountType
	DimensionID   string
	BookingDate   time.Time
}

func (e *DimensionValidationError) Error() string {
	if e.DimensionID == "" {
		return fmt.Sprintf("dimension validation failed: %s %s for %s on %s",
			e.Reason, e.DimensionType, e.AccountType, e.BookingDate.Format(time.DateOnly))
	}
	return fmt.Sprintf("dimension validation failed: %s %s %s for %s on %s",
		e.Reason, e.DimensionType, e.DimensionID, e.AccountType, e.BookingDate.Format(time.DateOnly))
}

// Unwrap lets errors.Is match the apperrors sentinel for the reason.
func (e *DimensionValidationError) Unwrap() error {
	switch e.Reason {
	case ReasonNotFound:
		return apperrors.ErrDimensionNotFound
	case ReasonInactive:
		return apperrors.ErrDimensionInactive
	case ReasonMandatoryMissing:
		return apperrors.ErrMandatoryDimensionMissing
	}
	return apperrors.ErrValidation
}
