package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// principal returns the tenant and actor placed in the context by AuthMiddleware.
// It writes a 401 and returns ok=false when either is missing.
func principal(c *gin.Context) (tenantID, actor string, ok bool) {
	tenantID, tok := middleware.GetTenantIDFromContext(c)
	actor, aok := middleware.GetActorFromContext(c)
	if !tok || !aok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Tenant or actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, actor, true
}

// respondError maps a service error onto a status code. Server-side failures are
// logged with detail and answered with fallback only.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}
