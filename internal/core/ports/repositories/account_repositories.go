package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode returns apperrors.ErrNotFound when the tenant has no such code.
	FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error)

	// FindAccountsByCodes returns the accounts found, keyed by code. Missing codes are simply absent.
	FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns every account of the tenant ordered by code.
	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// UpsertAccount inserts the account or, when (tenant, code) exists, updates its name and parent
	// and reactivates it. The stored row is returned.
	UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// DeactivateAccount marks the account inactive. Accounts are never deleted.
	DeactivateAccount(ctx context.Context, tenantID, code, actor string, at time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
