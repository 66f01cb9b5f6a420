package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	now                 func() time.Time
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := &exchangeRateHandler{
		exchangeRateService: exchangeRateService,
		now:                 func() time.Time { return time.Now().UTC() },
	}

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("/:from/:to", h.getExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Record an exchange rate
// @Description Stores the rate converting one unit of baseCurrency into quoteCurrency as of asOf
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} ErrorResponse "Currency not registered"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	_, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, &req, "CreateExchangeRate") {
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create exchange rate")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get the effective exchange rate
// @Description Returns the latest rate at or before asOf, inverting the reverse pair when no direct rate exists
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "Base currency"
// @Param   to path string true "Quote currency"
// @Param   asOf query string false "RFC3339 instant, defaults to now"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Malformed input"
// @Failure 503 {object} ErrorResponse "Rate unavailable"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	from := domain.NormalizeCurrency(c.Param("from"))
	to := domain.NormalizeCurrency(c.Param("to"))
	if !domain.IsCurrencyCode(from) || !domain.IsCurrencyCode(to) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency codes must be 3 letters"})
		return
	}

	asOf := h.now()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "asOf must be an RFC3339 timestamp"})
			return
		}
		asOf = parsed.UTC()
	}

	rate, err := h.exchangeRateService.FindRate(c.Request.Context(), from, to, asOf)
	if err != nil {
		respondError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
