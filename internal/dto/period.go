package dto

import "time"

// OpenPeriodRequest creates an OPEN accounting period for a ledger.
type OpenPeriodRequest struct {
	Code      string    `json:"code" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// ClosePeriodRequest freezes or closes a period.
type ClosePeriodRequest struct {
	FreezeOnly bool `json:"freezeOnly"`
}
