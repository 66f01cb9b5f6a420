package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// UpsertDimensionRequest creates or replaces a dimension. An empty DimensionID creates one.
type UpsertDimensionRequest struct {
	DimensionID   string                 `json:"dimensionID" binding:"omitempty,uuid"`
	CompanyCodeID string                 `json:"companyCodeID" binding:"required"`
	Type          domain.DimensionType   `json:"type" binding:"required,oneof=COST_CENTER PROFIT_CENTER DEPARTMENT PROJECT BUSINESS_AREA"`
	Code          string                 `json:"code" binding:"required"`
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	ParentID      string                 `json:"parentID"`
	Status        domain.DimensionStatus `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE RETIRED"` // defaults to DRAFT
	ValidFrom     time.Time              `json:"validFrom" binding:"required"`
	ValidTo       *time.Time             `json:"validTo"`
}

// ListDimensionsParams are the query filters of GET /dimensions.
type ListDimensionsParams struct {
	Type          domain.DimensionType   `form:"type" binding:"omitempty,oneof=COST_CENTER PROFIT_CENTER DEPARTMENT PROJECT BUSINESS_AREA"`
	CompanyCodeID string                 `form:"companyCodeID"`
	Status        domain.DimensionStatus `form:"status" binding:"omitempty,oneof=DRAFT ACTIVE RETIRED"`
}

// UpsertPolicyRequest replaces one cell of the tenant's policy matrix.
type UpsertPolicyRequest struct {
	AccountType   domain.AccountType          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	DimensionType domain.DimensionType        `json:"dimensionType" binding:"required,oneof=COST_CENTER PROFIT_CENTER DEPARTMENT PROJECT BUSINESS_AREA"`
	Requirement   domain.DimensionRequirement `json:"requirement" binding:"required,oneof=MANDATORY OPTIONAL"`
}
