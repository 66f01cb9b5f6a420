package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

type controlAccountHandler struct {
	controlAccountService portssvc.ControlAccountSvcFacade
}

func registerControlAccountRoutes(rg *gin.RouterGroup, controlAccountService portssvc.ControlAccountSvcFacade) {
	h := &controlAccountHandler{controlAccountService: controlAccountService}

	controlAccounts := rg.Group("/control-accounts")
	{
		controlAccounts.PUT("", h.saveControlAccount)
		controlAccounts.GET("/resolve", h.resolveControlAccount)
	}
}

// saveControlAccount godoc
// @Summary Configure a control account
// @Description Blank dimensionKey means DEFAULT and blank currency means ANY.
// @Tags control accounts
// @Accept  json
// @Produce  json
// @Param   config body dto.SaveControlAccountRequest true "Control account mapping"
// @Success 200 {object} domain.ControlAccountConfig
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /control-accounts [put]
func (h *controlAccountHandler) saveControlAccount(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.SaveControlAccountRequest
	if !bindJSON(c, &req, "SaveControlAccount") {
		return
	}

	saved, err := h.controlAccountService.SaveControlAccount(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save control account")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// resolveControlAccount godoc
// @Summary Resolve the control account for a sub-ledger posting
// @Tags control accounts
// @Produce  json
// @Param   companyCodeID query string true "Company code"
// @Param   subLedger query string true "AP or AR"
// @Param   category query string true "PAYABLE or RECEIVABLE"
// @Param   currency query string true "Transaction currency"
// @Param   costCenterID query string false "Cost center"
// @Param   profitCenterID query string false "Profit center"
// @Param   departmentID query string false "Department"
// @Param   projectID query string false "Project"
// @Param   businessAreaID query string false "Business area"
// @Success 200 {object} dto.ResolveControlAccountResponse
// @Failure 422 {object} ErrorResponse "No configuration matches"
// @Security BearerAuth
// @Router /control-accounts/resolve [get]
func (h *controlAccountHandler) resolveControlAccount(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ResolveControlAccountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	var (
		glAccountID string
		err         error
	)
	switch {
	case req.SubLedger == domain.SubLedgerAP && req.Category == domain.CategoryPayable:
		glAccountID, err = h.controlAccountService.ResolvePayablesAccount(ctx, tenantID, req.CompanyCodeID, req.Dimensions(), req.Currency)
	case req.SubLedger == domain.SubLedgerAR && req.Category == domain.CategoryReceivable:
		glAccountID, err = h.controlAccountService.ResolveReceivablesAccount(ctx, tenantID, req.CompanyCodeID, req.Dimensions(), req.Currency)
	default:
		glAccountID, err = h.controlAccountService.Resolve(ctx, tenantID, req.CompanyCodeID, req.SubLedger, req.Category, req.Dimensions(), req.Currency)
	}
	if err != nil {
		respondError(c, err, "Failed to resolve control account")
		return
	}
	c.JSON(http.StatusOK, dto.ResolveControlAccountResponse{GLAccountID: glAccountID})
}
