package services

import (
	"context"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementCalculator splits a fulfilled operational record into settlement lines.
type SettlementCalculator interface {
	ComputeSettlementLines(ctx context.Context, tenantID, recordID string) ([]domain.SettlementLine, error)
}

// RetailChannel is the point-of-sale collaborator.
type RetailChannel interface {
	SettlementCalculator
	// PrepareCheckout is pure computation; nothing is persisted.
	PrepareCheckout(ctx context.Context, tenantID string, order domain.RetailOrder) (*domain.CheckoutPlan, error)
	// Fulfill must return the same record when called again with the same journal id.
	Fulfill(ctx context.Context, tenantID, journalID string, order domain.RetailOrder) (*domain.OperationalRecord, error)
}

// PpobChannel is the bill-payment collaborator.
type PpobChannel interface {
	SettlementCalculator
	PrepareCheckout(ctx context.Context, tenantID string, order domain.PpobOrder) (*domain.CheckoutPlan, error)
	Fulfill(ctx context.Context, tenantID, journalID string, order domain.PpobOrder) (*domain.OperationalRecord, error)
}

// SagaSvc exposes the individual saga transitions.
type SagaSvc interface {
	CreateTransaction(ctx context.Context, tenantID string, channel domain.ChannelType, amount decimal.Decimal, actor, referenceID string, idempotencyKey *string) (*domain.MarketplaceTransaction, error)
	LockJournal(ctx context.Context, transactionID, actor, referenceID string, payments []domain.PaymentLine) (*domain.MarketplaceTransaction, error)
	MarkFulfilled(ctx context.Context, transactionID string, record domain.OperationalRecord) (*domain.MarketplaceTransaction, error)
	SettleTransaction(ctx context.Context, transactionID, actor string) (*domain.MarketplaceTransaction, error)
	ReverseTransaction(ctx context.Context, transactionID, actor, reason string) (*domain.MarketplaceTransaction, error)
	GetTransaction(ctx context.Context, tenantID, transactionID string) (*domain.MarketplaceTransaction, error)
}

// CheckoutSvc runs a whole checkout for a channel.
type CheckoutSvc interface {
	CheckoutRetail(ctx context.Context, tenantID, actor string, order domain.RetailOrder, idempotencyKey *string) (*domain.CheckoutResult, error)
	CheckoutPpob(ctx context.Context, tenantID, actor string, order domain.PpobOrder, idempotencyKey *string) (*domain.CheckoutResult, error)
}

// MarketplaceSvcFacade combines all marketplace-related service interfaces
type MarketplaceSvcFacade interface {
	SagaSvc
	CheckoutSvc
}

// ReconciliationSvc resolves transactions abandoned between lock and settlement.
type ReconciliationSvc interface {
	ListStuck(ctx context.Context, olderThanMinutes int) ([]domain.MarketplaceTransaction, error)
	Reconcile(ctx context.Context, olderThanMinutes int) ([]domain.ReconcileOutcome, error)
}
