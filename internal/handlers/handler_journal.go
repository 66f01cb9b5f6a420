package handlers

import (
	"context"
	"log/slog"
	"net/http"

	lockredis "github.com/SscSPs/ledger_core/internal/adapters/lock/redis"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	journalService     portssvc.JournalSvcFacade
	revaluationService portssvc.RevaluationSvcFacade
	locker             portssvc.Locker
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, revaluationService portssvc.RevaluationSvcFacade, locker portssvc.Locker) {
	h := &journalHandler{
		journalService:     journalService,
		revaluationService: revaluationService,
		locker:             locker,
	}

	period := rg.Group("/ledgers/:ledgerID/periods/:periodID")
	{
		period.POST("/journal-entries", h.postJournalEntry)
		period.POST("/revaluations", h.runRevaluation)
	}
	rg.GET("/journal-entries/:entryID", h.getJournalEntry)
}

// postJournalEntry godoc
// @Summary Post a journal entry
// @Description Normalizes every line to the ledger base currency, checks balance and dimensions, and posts the entry.
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Param   entry body dto.PostJournalEntryRequest true "Journal entry"
// @Success 201 {object} domain.JournalEntry
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Ledger, period or account not found"
// @Failure 409 {object} ErrorResponse "Period not open or concurrent update"
// @Failure 422 {object} ErrorResponse "Unbalanced entry or dimension failure"
// @Failure 503 {object} ErrorResponse "Exchange rate unavailable"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/journal-entries [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.PostJournalEntryRequest
	if !bindJSON(c, &req, "PostJournalEntry") {
		return
	}
	req.LedgerID = c.Param("ledgerID")
	req.PeriodID = c.Param("periodID")

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusCreated, entry)
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} domain.JournalEntry
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), tenantID, c.Param("entryID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// runRevaluation godoc
// @Summary Run an FX revaluation
// @Description Books unrealized gains and losses on the period's foreign-currency lines. Runs for the same period are serialized.
// @Tags journal entries
// @Accept  json
// @Produce  json
// @Param   ledgerID path string true "Ledger ID"
// @Param   periodID path string true "Period ID"
// @Param   request body dto.RunRevaluationRequest true "Revaluation parameters"
// @Success 201 {object} domain.JournalEntry
// @Success 204 "Nothing to revalue"
// @Failure 409 {object} ErrorResponse "Period not open or a run is in progress"
// @Failure 503 {object} ErrorResponse "Exchange rate unavailable"
// @Security BearerAuth
// @Router /ledgers/{ledgerID}/periods/{periodID}/revaluations [post]
func (h *journalHandler) runRevaluation(c *gin.Context) {
	tenantID, userID, ok := principal(c)
	if !ok {
		return
	}
	var req dto.RunRevaluationRequest
	if !bindJSON(c, &req, "RunRevaluation") {
		return
	}
	req.LedgerID = c.Param("ledgerID")
	req.PeriodID = c.Param("periodID")

	var entry *domain.JournalEntry
	key := lockredis.RevaluationLockKey(req.LedgerID, req.PeriodID)
	err := h.locker.WithLock(c.Request.Context(), key, func(ctx context.Context) error {
		var err error
		entry, err = h.revaluationService.RunRevaluation(ctx, tenantID, req, userID)
		return err
	})
	if err != nil {
		respondError(c, err, "Failed to run revaluation")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if entry == nil {
		logger.Info("Revaluation found nothing to adjust", slog.String("period_id", req.PeriodID))
		c.Status(http.StatusNoContent)
		return
	}
	logger.Info("Revaluation posted", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	c.JSON(http.StatusCreated, entry)
}
