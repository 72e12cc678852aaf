package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// MarketplaceReader defines read operations for saga rows.
type MarketplaceReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.MarketplaceTransaction, error)
	FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.MarketplaceTransaction, error)

	// ListStuck returns rows of any tenant in one of statuses whose updated_at is not after olderThan.
	ListStuck(ctx context.Context, statuses []domain.TransactionStatus, olderThan time.Time) ([]domain.MarketplaceTransaction, error)
}

// MarketplaceWriter defines write operations for saga rows.
type MarketplaceWriter interface {
	// InsertTransaction inserts the row unless its idempotency key already exists.
	// It reports whether a row was inserted.
	InsertTransaction(ctx context.Context, txn domain.MarketplaceTransaction) (bool, error)

	// Transition is a compare-and-write on status. When the persisted status is not in
	// update.From nothing is written and apperrors.ErrInvalidStateTransition is returned.
	Transition(ctx context.Context, transactionID string, update domain.TransitionUpdate) (*domain.MarketplaceTransaction, error)
}

// MarketplaceRepositoryFacade combines all marketplace repository interfaces.
type MarketplaceRepositoryFacade interface {
	MarketplaceReader
	MarketplaceWriter
}
