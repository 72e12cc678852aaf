package repositories

import (
	"context"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// SalesOrderRepository stores retail fulfillment records.
type SalesOrderRepository interface {
	// SaveSalesOrder inserts the order; if one already exists for the journal id, that one is returned.
	SaveSalesOrder(ctx context.Context, order domain.SalesOrder) (*domain.SalesOrder, error)
	FindSalesOrderByID(ctx context.Context, tenantID, id string) (*domain.SalesOrder, error)
}

// PpobPurchaseRepository stores bill-payment fulfillment records.
type PpobPurchaseRepository interface {
	// SavePpobPurchase inserts the purchase; if one already exists for the journal id, that one is returned.
	SavePpobPurchase(ctx context.Context, purchase domain.PpobPurchase) (*domain.PpobPurchase, error)
	FindPpobPurchaseByID(ctx context.Context, tenantID, id string) (*domain.PpobPurchase, error)
}
