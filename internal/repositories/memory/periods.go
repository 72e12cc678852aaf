package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
)

var _ portsrepo.PeriodRepositoryFacade = (*Store)(nil)

func (s *Store) findPeriodByDate(tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	for _, p := range s.st.periods {
		if p.TenantID == tenantID && p.Contains(date) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: no period for %s", apperrors.ErrNotFound, date.Format(time.DateOnly))
}

func (s *Store) findPeriodByID(tenantID, periodID string) (*domain.AccountingPeriod, error) {
	p, ok := s.st.periods[periodID]
	if !ok || p.TenantID != tenantID {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
	}
	return &p, nil
}

func (s *Store) FindPeriodByDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	return s.findPeriodByDate(tenantID, date)
}

func (s *Store) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	return s.findPeriodByID(tenantID, periodID)
}

func (s *Store) FindLatestPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	var latest *domain.AccountingPeriod
	for _, p := range s.st.periods {
		if p.TenantID == tenantID && (latest == nil || p.EndDate.After(latest.EndDate)) {
			p := p
			latest = &p
		}
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: tenant %s has no periods", apperrors.ErrNotFound, tenantID)
	}
	return latest, nil
}

func (s *Store) FindPeriodStartingOn(ctx context.Context, tenantID string, start time.Time) (*domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	for _, p := range s.st.periods {
		if p.TenantID == tenantID && p.StartDate.Equal(start) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: no period starting %s", apperrors.ErrNotFound, start.Format(time.DateOnly))
}

func (s *Store) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	defer s.lock(ctx)()
	var out []domain.AccountingPeriod
	for _, p := range s.st.periods {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *Store) ListOpeningBalances(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error) {
	defer s.lock(ctx)()
	var out []domain.OpeningBalance
	for _, ob := range s.st.opening[periodID] {
		if ob.TenantID == tenantID {
			out = append(out, ob)
		}
	}
	return out, nil
}

// The store mutex already serializes units of work, so row locks reduce to reads.

func (s *Store) LockPeriodByDateForShare(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	return s.FindPeriodByDate(ctx, tenantID, date)
}

func (s *Store) LockPeriodForUpdate(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	return s.FindPeriodByID(ctx, tenantID, periodID)
}

func (s *Store) CreatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	defer s.lock(ctx)()
	for _, p := range s.st.periods {
		if p.TenantID != period.TenantID {
			continue
		}
		if !period.StartDate.After(p.EndDate) && !period.EndDate.Before(p.StartDate) {
			return fmt.Errorf("%w: period overlaps %s", apperrors.ErrConflict, p.PeriodID)
		}
	}
	s.st.periods[period.PeriodID] = period
	return nil
}

func (s *Store) UpdatePeriodStatus(ctx context.Context, u portsrepo.PeriodStatusUpdate) error {
	defer s.lock(ctx)()
	p, err := s.findPeriodByID(u.TenantID, u.PeriodID)
	if err != nil {
		return err
	}
	if p.Status != u.From {
		return fmt.Errorf("%w: period %s is %s, expected %s", apperrors.ErrConflict, u.PeriodID, p.Status, u.From)
	}
	actor, reason, at := u.Actor, u.Reason, u.At
	p.Status = u.To
	switch u.To {
	case domain.PeriodClosed:
		p.ClosedBy, p.ClosedAt, p.CloseReason = &actor, &at, &reason
	case domain.PeriodOpen:
		p.ReopenedBy, p.ReopenedAt, p.ReopenReason = &actor, &at, &reason
	}
	p.LastUpdatedAt, p.LastUpdatedBy = at, actor
	s.st.periods[p.PeriodID] = *p
	return nil
}

func (s *Store) SaveOpeningBalances(ctx context.Context, balances []domain.OpeningBalance) error {
	defer s.lock(ctx)()
	for _, ob := range balances {
		rows := slices.DeleteFunc(slices.Clone(s.st.opening[ob.PeriodID]), func(x domain.OpeningBalance) bool {
			return x.AccountID == ob.AccountID
		})
		s.st.opening[ob.PeriodID] = append(rows, ob)
	}
	return nil
}

func (s *Store) DeleteOpeningBalances(ctx context.Context, tenantID, periodID string) error {
	defer s.lock(ctx)()
	rows := slices.DeleteFunc(slices.Clone(s.st.opening[periodID]), func(x domain.OpeningBalance) bool {
		return x.TenantID == tenantID
	})
	if len(rows) == 0 {
		delete(s.st.opening, periodID)
		return nil
	}
	s.st.opening[periodID] = rows
	return nil
}
