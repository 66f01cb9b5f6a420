package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// principal returns the tenant and acting user set by AuthMiddleware, answering 401 when absent.
func principal(c *gin.Context) (tenantID, userID string, ok bool) {
	tenantID, tenantOK := middleware.GetTenantIDFromContext(c)
	userID, userOK := middleware.GetUserIDFromContext(c)
	if !tenantOK || !userOK {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Tenant or user missing from context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}

// bindJSON binds the body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

// respondError maps err to its status code. Server-side failures hide the cause
// behind fallback; client errors echo it.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}

	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	resp := ErrorResponse{Error: err.Error()}

	var dimErr *domain.DimensionValidationError
	if errors.As(err, &dimErr) {
		resp.Details = map[string]string{
			"reason":        string(dimErr.Reason),
			"dimensionType": string(dimErr.DimensionType),
			"accountType":   string(dimErr.AccountType),
			"bookingDate":   dimErr.BookingDate.Format("2006-01-02"),
		}
		if dimErr.DimensionID != "" {
			resp.Details["dimensionID"] = dimErr.DimensionID
		}
	}
	c.JSON(status, resp)
}
