package dto

import "github.com/SscSPs/ledger_core/internal/core/domain"

// SaveControlAccountRequest upserts one control-account mapping.
type SaveControlAccountRequest struct {
	CompanyCodeID string                        `json:"companyCodeID" binding:"required"`
	SubLedger     domain.SubLedger              `json:"subLedger" binding:"required,oneof=AP AR"`
	Category      domain.ControlAccountCategory `json:"category" binding:"required,oneof=PAYABLE RECEIVABLE"`
	DimensionKey  string                        `json:"dimensionKey"` // defaults to DEFAULT
	Currency      string                        `json:"currency"`     // defaults to ANY
	GLAccountID   string                        `json:"glAccountID" binding:"required"`
}

// ResolveControlAccountRequest is the lookup of a control account for a sub-ledger posting.
type ResolveControlAccountRequest struct {
	CompanyCodeID  string                        `form:"companyCodeID" binding:"required"`
	SubLedger      domain.SubLedger              `form:"subLedger" binding:"required,oneof=AP AR"`
	Category       domain.ControlAccountCategory `form:"category" binding:"required,oneof=PAYABLE RECEIVABLE"`
	Currency       string                        `form:"currency" binding:"required,currency_code"`
	CostCenterID   string                        `form:"costCenterID"`
	ProfitCenterID string                        `form:"profitCenterID"`
	DepartmentID   string                        `form:"departmentID"`
	ProjectID      string                        `form:"projectID"`
	BusinessAreaID string                        `form:"businessAreaID"`
}

// Dimensions collects the query dimension filters.
func (r ResolveControlAccountRequest) Dimensions() domain.DimensionAssignments {
	return domain.DimensionAssignments{
		CostCenterID:   r.CostCenterID,
		ProfitCenterID: r.ProfitCenterID,
		DepartmentID:   r.DepartmentID,
		ProjectID:      r.ProjectID,
		BusinessAreaID: r.BusinessAreaID,
	}
}

// ResolveControlAccountResponse returns the resolved GL account.
type ResolveControlAccountResponse struct {
	GLAccountID string `json:"glAccountID"`
}
