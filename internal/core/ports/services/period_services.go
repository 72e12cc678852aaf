package services

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// PeriodGuardSvc answers whether a date may receive postings.
type PeriodGuardSvc interface {
	// Mode reports the guard's configured behaviour for dates with no period.
	Mode() domain.PeriodMode

	PeriodFor(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)

	// AssertOpen fails with apperrors.ErrPeriodClosed for a closed period. When no period
	// covers date, strict mode fails with apperrors.ErrPeriodNotFound and lenient mode
	// creates an open calendar-year period.
	AssertOpen(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error)
}

// PeriodLifecycleSvc manages the period calendar.
type PeriodLifecycleSvc interface {
	CreatePeriod(ctx context.Context, tenantID string, start, end time.Time, actor string) (*domain.AccountingPeriod, error)
	ClosePeriod(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error)
	ReopenPeriod(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error)
	OpeningBalances(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error)
}

// PeriodSvcFacade combines all period-related service interfaces
type PeriodSvcFacade interface {
	PeriodGuardSvc
	PeriodLifecycleSvc
}
