package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the ledger and chart-of-accounts routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.POST("", h.createLedger)
		ledgers.GET("/:ledgerID", h.getLedger)
	}

	charts := rg.Group("/charts")
	{
		charts.GET("/:chartID", h.getChart)
		charts.POST("/:chartID/accounts", h.defineAccount)
	}
}

// createLedger godoc
// @Summary Create a ledger
// @Description Creates an ACTIVE ledger, creating its chart of accounts when none is referenced
// @Tags ledgers
// @Accept  json
// @Produce  json
// @Param   ledger body dto.CreateLedgerRequest true "Ledger details"
// @Success 201 {object} dto.CreateLedgerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Chart or currency not found"
// @Failure 500 {object} ErrorResponse "Failed to create ledger"
// @Security BearerAuth
// @Router /ledgers [post]
func (h *ledgerHandler) createLedger(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateLedgerRequest
	if !bindJSON(c, &req, "CreateLedger") {
		return
	}

	ledger, chart, err := h.ledgerService.CreateLedger(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create ledger")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger created",
		slog.String("ledger_id", ledger.LedgerID), slog.String("chart_id", chart.ChartID))
	c.JSON(http.StatusCreated, dto.CreateLedgerResponse{Ledger: *ledger, Chart: *chart})
}

// getLedger godoc
// @Summary Get a ledger
// @Tags ledgers
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Success 200 {object} domain.Ledger
// @Failure 404 {object} ErrorResponse "Ledger not found"
// @Security BearerAuth
// @Router /ledgers/{ledgerID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), tenantID, c.Param("ledgerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// getChart godoc
// @Summary Get a chart of accounts
// @Tags charts
// @Produce  json
// @Param   chartID path string true "Chart ID"
// @Success 200 {object} domain.ChartOfAccounts
// @Failure 404 {object} ErrorResponse "Chart not found"
// @Security BearerAuth
// @Router /charts/{chartID} [get]
func (h *ledgerHandler) getChart(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	chart, err := h.ledgerService.GetChart(c.Request.Context(), tenantID, c.Param("chartID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve chart")
		return
	}
	c.JSON(http.StatusOK, chart)
}

// defineAccount godoc
// @Summary Define an account
// @Description Adds an account to the chart. Codes are unique per chart regardless of case.
// @Tags charts
// @Accept  json
// @Produce  json
// @Param   chartID path string true "Chart ID"
// @Param   account body dto.DefineAccountRequest true "Account details"
// @Success 201 {object} domain.ChartOfAccounts
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Chart or parent not found"
// @Failure 409 {object} ErrorResponse "Duplicate code or concurrent update"
// @Security BearerAuth
// @Router /charts/{chartID}/accounts [post]
func (h *ledgerHandler) defineAccount(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.DefineAccountRequest
	if !bindJSON(c, &req, "DefineAccount") {
		return
	}

	chart, err := h.ledgerService.DefineAccount(c.Request.Context(), tenantID, c.Param("chartID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to define account")
		return
	}
	c.JSON(http.StatusCreated, chart)
}
