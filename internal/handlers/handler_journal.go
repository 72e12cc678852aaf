package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/SscSPs/marketplace_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultJournalPageSize = 20

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// RegisterJournalRoutes registers the read and void routes of the journal engine.
// Journals are only ever written by business events, so there is no create route.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.POST("/:id/void", h.voidJournal)
	}
}

// listJournals godoc
// @Summary List journals
// @Description Newest first, paginated by an opaque token
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListJournals query")
		return
	}
	if params.Limit == 0 {
		params.Limit = defaultJournalPageSize
	}
	query := domain.ListJournalsParams{Limit: params.Limit}
	if params.NextToken != "" {
		query.NextToken = &params.NextToken
	}

	res, err := h.journalService.ListJournals(c.Request.Context(), tenantID, query)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalsResponse(res))
}

// getJournal godoc
// @Summary Get a journal with its lines
// @Tags journals
// @Produce  json
// @Param   id path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	journal, err := h.journalService.GetJournal(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// voidJournal godoc
// @Summary Void a posted journal
// @Description Posts a compensating journal with debits and credits swapped. Voiding twice returns the first void. Escrow and settlement journals belong to marketplace transactions and are reversed through them instead.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal ID"
// @Param   void body dto.VoidJournalRequest true "Audit reason"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Journal cannot be voided"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal belongs to a marketplace transaction or its period is closed"
// @Failure 500 {object} map[string]string "Failed to void journal"
// @Security BearerAuth
// @Router /journals/{id}/void [post]
func (h *journalHandler) voidJournal(c *gin.Context) {
	tenantID, actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.VoidJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "VoidJournal")
		return
	}

	journalID := c.Param("id")
	original, err := h.journalService.GetJournal(c.Request.Context(), tenantID, journalID)
	if err != nil {
		respondError(c, err, "Failed to void journal")
		return
	}
	if original.ReferenceType == domain.RefEscrowLock || original.ReferenceType == domain.RefSettlement {
		c.JSON(http.StatusConflict, gin.H{"error": "Journal belongs to a marketplace transaction; reverse the transaction instead"})
		return
	}

	void, err := h.journalService.VoidJournal(c.Request.Context(), tenantID, journalID, actor, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to void journal")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal voided",
		slog.String("journal_id", journalID), slog.String("void_journal_id", void.JournalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(void))
}
