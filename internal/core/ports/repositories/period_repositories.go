package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// PeriodStatusUpdate is a compare-and-write on a period's status.
type PeriodStatusUpdate struct {
	TenantID string
	PeriodID string
	From     domain.PeriodStatus
	To       domain.PeriodStatus
	Actor    string
	Reason   string
	At       time.Time
}

// PeriodReader defines read operations for accounting periods.
type PeriodReader interface {
	// FindPeriodByDate returns the period containing date, or apperrors.ErrNotFound.
	FindPeriodByDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// FindPeriodByID returns apperrors.ErrNotFound when absent.
	FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)

	// FindLatestPeriod returns the period with the greatest end date, or apperrors.ErrNotFound.
	FindLatestPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error)

	// FindPeriodStartingOn returns the period whose start date is the given day, or apperrors.ErrNotFound.
	FindPeriodStartingOn(ctx context.Context, tenantID string, start time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods returns the tenant's periods ordered by start date.
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)

	// ListOpeningBalances returns the snapshot rows of a period. An empty result means no snapshot.
	ListOpeningBalances(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error)
}

// PeriodLocker takes row locks on periods. Only meaningful inside TxManager.WithinTx.
type PeriodLocker interface {
	// LockPeriodByDateForShare locks the period covering date against concurrent close.
	LockPeriodByDateForShare(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// LockPeriodForUpdate locks a period exclusively for a status change.
	LockPeriodForUpdate(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for periods and their snapshots.
type PeriodWriter interface {
	// CreatePeriod inserts a period. Overlaps fail with apperrors.ErrConflict.
	CreatePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriodStatus applies the update only if the current status equals From.
	// Zero affected rows yields apperrors.ErrConflict.
	UpdatePeriodStatus(ctx context.Context, update PeriodStatusUpdate) error

	// SaveOpeningBalances writes snapshot rows for one period.
	SaveOpeningBalances(ctx context.Context, balances []domain.OpeningBalance) error

	// DeleteOpeningBalances removes a period's snapshot.
	DeleteOpeningBalances(ctx context.Context, tenantID, periodID string) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodLocker
	PeriodWriter
}
