package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/SscSPs/marketplace_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

// RegisterPeriodRoutes registers routes for the accounting period calendar.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.POST("/:id/close", h.closePeriod)
		periods.POST("/:id/reopen", h.reopenPeriod)
		periods.GET("/:id/opening-balances", h.openingBalances)
	}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Description The first period may start on any date; every later one must start the day after the latest period ends.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period dates"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Period overlaps or leaves a gap"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	tenantID, actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "CreatePeriod")
		return
	}
	// binding already checked the layout
	start, _ := time.Parse(time.DateOnly, req.StartDate)
	end, _ := time.Parse(time.DateOnly, req.EndDate)

	period, err := h.periodService.CreatePeriod(c.Request.Context(), tenantID, start, end, actor)
	if err != nil {
		respondError(c, err, "Failed to create period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Accounting period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	periods, err := h.periodService.ListPeriods(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodResponse(periods))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Rejects the close while drafts remain, then snapshots opening balances for the successor period.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   id path string true "Period ID"
// @Param   action body dto.PeriodActionRequest true "Audit reason"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /periods/{id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	h.transition(c, "ClosePeriod", h.periodService.ClosePeriod)
}

// reopenPeriod godoc
// @Summary Reopen an accounting period
// @Description Refused once the successor period is closed. Discards the successor's opening balance snapshot.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   id path string true "Period ID"
// @Param   action body dto.PeriodActionRequest true "Audit reason"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period open or successor closed"
// @Failure 500 {object} map[string]string "Failed to reopen period"
// @Security BearerAuth
// @Router /periods/{id}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	h.transition(c, "ReopenPeriod", h.periodService.ReopenPeriod)
}

type periodTransition func(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error)

func (h *periodHandler) transition(c *gin.Context, name string, fn periodTransition) {
	tenantID, actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.PeriodActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, name)
		return
	}

	period, err := fn(c.Request.Context(), tenantID, c.Param("id"), actor, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to update period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Accounting period updated",
		slog.String("period_id", period.PeriodID), slog.String("status", string(period.Status)))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// openingBalances godoc
// @Summary List opening balances of a period
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {array} dto.OpeningBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to list opening balances"
// @Security BearerAuth
// @Router /periods/{id}/opening-balances [get]
func (h *periodHandler) openingBalances(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	balances, err := h.periodService.OpeningBalances(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list opening balances")
		return
	}
	out := make([]dto.OpeningBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = dto.OpeningBalanceResponse{AccountID: b.AccountID, Balance: b.Balance}
	}
	c.JSON(http.StatusOK, out)
}
