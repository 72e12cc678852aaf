package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/SscSPs/marketplace_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader names the header carrying a client's checkout idempotency key.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

type marketplaceHandler struct {
	marketplaceService portssvc.MarketplaceSvcFacade
}

// RegisterMarketplaceRoutes registers the checkout and transaction routes.
func RegisterMarketplaceRoutes(rg *gin.RouterGroup, marketplaceService portssvc.MarketplaceSvcFacade) {
	h := &marketplaceHandler{marketplaceService: marketplaceService}

	checkout := rg.Group("/checkout")
	{
		checkout.POST("/retail", h.checkoutRetail)
		checkout.POST("/ppob", h.checkoutPpob)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/reverse", h.reverseTransaction)
	}
}

// idempotencyKey reads the optional header. A blank header means no key.
func idempotencyKey(c *gin.Context) (*string, bool) {
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if key == "" {
		return nil, true
	}
	if len(key) > maxIdempotencyKeyLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key is too long"})
		return nil, false
	}
	return &key, true
}

func (h *marketplaceHandler) respondCheckout(c *gin.Context, res *domain.CheckoutResult, err error) {
	if err != nil {
		respondError(c, err, "Checkout failed")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Checkout completed",
		slog.String("transaction_id", res.Transaction.TransactionID), slog.String("status", string(res.Transaction.Status)))
	c.JSON(http.StatusOK, res)
}

// checkoutRetail godoc
// @Summary Point-of-sale checkout
// @Description Locks the buyer's payment in escrow, records the sales order and settles it to revenue, tax, inventory and consignment payables. Repeating a request with the same Idempotency-Key returns the original transaction.
// @Tags checkout
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Client idempotency key"
// @Param   order body dto.RetailCheckoutRequest true "Retail order"
// @Success 200 {object} domain.CheckoutResult
// @Failure 400 {object} map[string]string "Invalid input format or payments do not match the total"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Idempotency key reused or period closed"
// @Failure 422 {object} map[string]string "Chart of accounts incomplete or transaction reversed"
// @Failure 500 {object} map[string]string "Checkout failed"
// @Security BearerAuth
// @Router /checkout/retail [post]
func (h *marketplaceHandler) checkoutRetail(c *gin.Context) {
	tenantID, actor, ok := principal(c)
	if !ok {
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}
	var req dto.RetailCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "RetailCheckout")
		return
	}

	res, err := h.marketplaceService.CheckoutRetail(c.Request.Context(), tenantID, actor, req.ToOrder(), key)
	h.respondCheckout(c, res, err)
}

// checkoutPpob godoc
// @Summary Bill-payment checkout
// @Description Locks the buyer's payment in escrow, records the purchase and settles it to biller payables and fee revenue. Repeating a request with the same Idempotency-Key returns the original transaction.
// @Tags checkout
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Client idempotency key"
// @Param   order body dto.PpobCheckoutRequest true "Bill-payment order"
// @Success 200 {object} domain.CheckoutResult
// @Failure 400 {object} map[string]string "Invalid input format or payments do not match the total"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Idempotency key reused or period closed"
// @Failure 422 {object} map[string]string "Chart of accounts incomplete or transaction reversed"
// @Failure 500 {object} map[string]string "Checkout failed"
// @Security BearerAuth
// @Router /checkout/ppob [post]
func (h *marketplaceHandler) checkoutPpob(c *gin.Context) {
	tenantID, actor, ok := principal(c)
	if !ok {
		return
	}
	key, ok := idempotencyKey(c)
	if !ok {
		return
	}
	var req dto.PpobCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "PpobCheckout")
		return
	}

	res, err := h.marketplaceService.CheckoutPpob(c.Request.Context(), tenantID, actor, req.ToOrder(), key)
	h.respondCheckout(c, res, err)
}

// getTransaction godoc
// @Summary Get a marketplace transaction
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} domain.MarketplaceTransaction
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *marketplaceHandler) getTransaction(c *gin.Context) {
	tenantID, _, ok := principal(c)
	if !ok {
		return
	}
	txn, err := h.marketplaceService.GetTransaction(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// reverseTransaction godoc
// @Summary Reverse a marketplace transaction
// @Description Releases the escrow of a locked or fulfilled transaction back to the payment sources. Reversing an already reversed transaction returns it unchanged.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   reverse body dto.ReverseTransactionRequest true "Reason"
// @Success 200 {object} domain.MarketplaceTransaction
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Transaction already settled"
// @Failure 500 {object} map[string]string "Failed to reverse transaction"
// @Security BearerAuth
// @Router /transactions/{id}/reverse [post]
func (h *marketplaceHandler) reverseTransaction(c *gin.Context) {
	tenantID, actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ReverseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ReverseTransaction")
		return
	}

	transactionID := c.Param("id")
	// the saga itself is not tenant scoped
	if _, err := h.marketplaceService.GetTransaction(c.Request.Context(), tenantID, transactionID); err != nil {
		respondError(c, err, "Failed to reverse transaction")
		return
	}
	txn, err := h.marketplaceService.ReverseTransaction(c.Request.Context(), transactionID, actor, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to reverse transaction")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction reversed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, txn)
}
