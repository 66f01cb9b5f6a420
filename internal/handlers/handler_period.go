package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func registerPeriodRoutes(ledgers *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := ledgers.Group("/:ledgerID/periods")
	{
		periods.POST("", h.openPeriod)
		periods.GET("", h.listOpenPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
	}
}

// openPeriod godoc
// @Summary Open an accounting period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   period body dto.OpenPeriodRequest true "Period details"
// @Success 201 {object} domain.AccountingPeriod
// @Failure 400 {object} ErrorResponse "Invalid dates or overlapping period"
// @Failure 404 {object} ErrorResponse "Ledger not found"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods [post]
func (h *periodHandler) openPeriod(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.OpenPeriodRequest
	if !bindJSON(c, &req, "OpenPeriod") {
		return
	}

	period, err := h.periodService.OpenPeriod(c.Request.Context(), tenantID, c.Param("ledgerID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to open period")
		return
	}
	c.JSON(http.StatusCreated, period)
}

// listOpenPeriods godoc
// @Summary List the OPEN periods of a ledger
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {array} domain.AccountingPeriod
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods [get]
func (h *periodHandler) listOpenPeriods(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListOpenPeriods(c.Request.Context(), tenantID, c.Param("ledgerID"))
	if err != nil {
		respondError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, periods)
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 404 {object} ErrorResponse "Period not found"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(c.Request.Context(), tenantID, c.Param("periodID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve period")
		return
	}
	if period.LedgerID != c.Param("ledgerID") {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Period not found"})
		return
	}
	c.JSON(http.StatusOK, period)
}

// closePeriod godoc
// @Summary Freeze or close an accounting period
// @Description freezeOnly moves OPEN to FROZEN; otherwise the period is CLOSED. Repeating the current status is a no-op.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Param   request body dto.ClosePeriodRequest false "Close options"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 404 {object} ErrorResponse "Period not found"
// @Failure 409 {object} ErrorResponse "Invalid transition or concurrent update"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ClosePeriodRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req, "ClosePeriod") {
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), tenantID, c.Param("ledgerID"), c.Param("periodID"), req.FreezeOnly, userID)
	if err != nil {
		respondError(c, err, "Failed to close period")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Period status updated",
		slog.String("period_id", period.PeriodID), slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, period)
}

// reopenPeriod godoc
// @Summary Reopen a frozen accounting period
// @Tags periods
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Success 200 {object} domain.AccountingPeriod
// @Failure 409 {object} ErrorResponse "Period is closed"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), tenantID, c.Param("ledgerID"), c.Param("periodID"), userID)
	if err != nil {
		respondError(c, err, "Failed to reopen period")
		return
	}
	c.JSON(http.StatusOK, period)
}
