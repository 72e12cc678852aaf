package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type reconcileHandler struct {
	reconciliationService portssvc.ReconciliationSvc
	defaultThreshold      int
}

// RegisterReconcileRoutes registers the manual reconciliation routes. The scan covers
// every tenant; responses only report the caller's own transactions.
func RegisterReconcileRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc, defaultThresholdMinutes int) {
	h := &reconcileHandler{reconciliationService: reconciliationService, defaultThreshold: defaultThresholdMinutes}

	rec := rg.Group("/reconcile")
	{
		rec.GET("/stuck", h.listStuck)
		rec.POST("", h.reconcile)
	}
}

// listStuck godoc
// @Summary List stuck transactions
// @Description Transactions still locked or fulfilled after the threshold
// @Tags reconcile
// @Produce  json
// @Param   olderThanMinutes query int false "Age threshold in minutes"
// @Success 200 {array} domain.MarketplaceTransaction
// @Failure 400 {object} map[string]string "Invalid threshold"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list stuck transactions"
// @Security BearerAuth
// @Router /reconcile/stuck [get]
func (h *reconcileHandler) listStuck(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	threshold := h.defaultThreshold
	if raw := c.Query("olderThanMinutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "olderThanMinutes must be a non-negative integer"})
			return
		}
		threshold = n
	}

	stuck, err := h.reconciliationService.ListStuck(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err, "Failed to list stuck transactions")
		return
	}
	own := make([]domain.MarketplaceTransaction, 0, len(stuck))
	for _, t := range stuck {
		if t.TenantID == tenantID {
			own = append(own, t)
		}
	}
	c.JSON(http.StatusOK, own)
}

// reconcile godoc
// @Summary Reconcile stuck transactions now
// @Description Fulfilled transactions are settled, the rest reversed. Safe to run alongside the background scanner.
// @Tags reconcile
// @Accept  json
// @Produce  json
// @Param   reconcile body dto.ReconcileRequest false "Threshold override"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Reconciliation failed"
// @Security BearerAuth
// @Router /reconcile [post]
func (h *reconcileHandler) reconcile(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ReconcileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err, "Reconcile")
			return
		}
	}
	threshold := h.defaultThreshold
	if req.OlderThanMinutes != nil {
		threshold = *req.OlderThanMinutes
	}

	outcomes, err := h.reconciliationService.Reconcile(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err, "Reconciliation failed")
		return
	}
	resp := dto.ReconcileResponse{Outcomes: make([]domain.ReconcileOutcome, 0, len(outcomes))}
	for _, o := range outcomes {
		if o.TenantID == tenantID {
			resp.Outcomes = append(resp.Outcomes, o)
		}
	}
	c.JSON(http.StatusOK, resp)
}
