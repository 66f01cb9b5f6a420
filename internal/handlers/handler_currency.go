package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := &currencyHandler{currencyService: currencyService}

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:currencyCode", h.getCurrencyByCode)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Registers a currency so ledgers and accounts can be denominated in it
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Currency code already exists"
// @Failure 500 {object} ErrorResponse "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	_, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateCurrencyRequest
	if !bindJSON(c, &req, "CreateCurrency") {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create currency", slog.String("currency_code", req.CurrencyCode))

	created, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}

	logger.Info("Currency created successfully", slog.String("currency_code", created.CurrencyCode))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(created))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Tags currencies
// @Produce  json
// @Param   currencyCode path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} ErrorResponse "Malformed code"
// @Failure 404 {object} ErrorResponse "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	code := domain.NormalizeCurrency(c.Param("currencyCode"))
	if !domain.IsCurrencyCode(code) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency code must be 3 letters"})
		return
	}

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} ErrorResponse "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Currencies listed", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}
