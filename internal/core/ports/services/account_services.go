package services

import (
	"context"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	// ResolveAccountID maps a code to its account id without side effects.
	ResolveAccountID(ctx context.Context, tenantID, code string) (string, error)

	// ResolveAccounts maps codes to active accounts. A missing or inactive code
	// fails with apperrors.ErrChartOfAccountsMisconfigured naming the code.
	ResolveAccounts(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)

	// GetAccount returns the account for a code, active or not.
	GetAccount(ctx context.Context, tenantID, code string) (*domain.Account, error)

	ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// EnsureAccount is an idempotent upsert by (tenant, code).
	EnsureAccount(ctx context.Context, tenantID string, spec domain.AccountSpec, actor string) (*domain.Account, error)

	// SeedDefaultChart upserts the default chart for the tenant.
	SeedDefaultChart(ctx context.Context, tenantID, actor string) ([]domain.Account, error)

	DeactivateAccount(ctx context.Context, tenantID, code, actor string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
