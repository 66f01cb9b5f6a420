package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type dimensionHandler struct {
	dimensionService portssvc.DimensionSvcFacade
	policyService    portssvc.DimensionPolicySvcFacade
}

func registerDimensionRoutes(rg *gin.RouterGroup, dimensionService portssvc.DimensionSvcFacade, policyService portssvc.DimensionPolicySvcFacade) {
	h := &dimensionHandler{dimensionService: dimensionService, policyService: policyService}

	dimensions := rg.Group("/dimensions")
	{
		dimensions.PUT("", h.upsertDimension)
		dimensions.GET("", h.listDimensions)
		dimensions.GET("/:dimensionID", h.getDimension)
	}

	policies := rg.Group("/dimension-policies")
	{
		policies.GET("", h.listPolicies)
		policies.PUT("", h.upsertPolicy)
	}
}

// upsertDimension godoc
// @Summary Create or update a dimension
// @Description An empty dimensionID creates a new dimension. Changes are published as finance.dimension.changed.
// @Tags dimensions
// @Accept  json
// @Produce  json
// @Param   dimension body dto.UpsertDimensionRequest true "Dimension"
// @Success 200 {object} domain.AccountingDimension
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Concurrent update"
// @Security BearerAuth
// @Router /dimensions [put]
func (h *dimensionHandler) upsertDimension(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpsertDimensionRequest
	if !bindJSON(c, &req, "UpsertDimension") {
		return
	}

	dim, err := h.dimensionService.UpsertDimension(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save dimension")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Dimension saved",
		slog.String("dimension_id", dim.DimensionID), slog.String("status", string(dim.Status)))
	c.JSON(http.StatusOK, dim)
}

// listDimensions godoc
// @Summary List dimensions
// @Tags dimensions
// @Produce  json
// @Param   type query string false "Dimension type"
// @Param   companyCodeID query string false "Company code"
// @Param   status query string false "Status"
// @Success 200 {array} domain.AccountingDimension
// @Security BearerAuth
// @Router /dimensions [get]
func (h *dimensionHandler) listDimensions(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	var params dto.ListDimensionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	dims, err := h.dimensionService.ListDimensions(c.Request.Context(), tenantID, params)
	if err != nil {
		respondError(c, err, "Failed to list dimensions")
		return
	}
	c.JSON(http.StatusOK, dims)
}

// getDimension godoc
// @Summary Get a dimension
// @Tags dimensions
// @Produce  json
// @Param   dimensionID path string true "Dimension ID"
// @Success 200 {object} domain.AccountingDimension
// @Failure 404 {object} ErrorResponse "Dimension not found"
// @Security BearerAuth
// @Router /dimensions/{dimensionID} [get]
func (h *dimensionHandler) getDimension(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	dim, err := h.dimensionService.GetDimension(c.Request.Context(), tenantID, c.Param("dimensionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve dimension")
		return
	}
	c.JSON(http.StatusOK, dim)
}

// listPolicies godoc
// @Summary List the tenant's dimension policy matrix
// @Description Seeds the default matrix on first access.
// @Tags dimensions
// @Produce  json
// @Success 200 {array} domain.AccountDimensionPolicy
// @Security BearerAuth
// @Router /dimension-policies [get]
func (h *dimensionHandler) listPolicies(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	policies, err := h.policyService.ListPolicies(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to list dimension policies")
		return
	}
	c.JSON(http.StatusOK, policies)
}

// upsertPolicy godoc
// @Summary Replace one cell of the dimension policy matrix
// @Tags dimensions
// @Accept  json
// @Produce  json
// @Param   policy body dto.UpsertPolicyRequest true "Policy"
// @Success 200 {object} domain.AccountDimensionPolicy
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /dimension-policies [put]
func (h *dimensionHandler) upsertPolicy(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpsertPolicyRequest
	if !bindJSON(c, &req, "UpsertPolicy") {
		return
	}

	policy, err := h.policyService.UpsertPolicy(c.Request.Context(), tenantID, req)
	if err != nil {
		respondError(c, err, "Failed to save dimension policy")
		return
	}
	c.JSON(http.StatusOK, policy)
}
