package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type periodService struct {
	BaseService
	mode        domain.PeriodMode
	tx          portsrepo.TxManager
	periodRepo  portsrepo.PeriodRepositoryFacade
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
}

// NewPeriodService creates the accounting period guard.
func NewPeriodService(
	mode domain.PeriodMode,
	tx portsrepo.TxManager,
	periodRepo portsrepo.PeriodRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	journalRepo portsrepo.JournalReader,
	opts ...Option,
) portssvc.PeriodSvcFacade {
	if mode != domain.PeriodModeLenient {
		mode = domain.PeriodModeStrict
	}
	svc := &periodService{
		mode:        mode,
		tx:          tx,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) Mode() domain.PeriodMode { return s.mode }

func (s *periodService) PeriodFor(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodByDate(ctx, tenantID, domain.DateOf(date))
}

func (s *periodService) AssertOpen(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	day := domain.DateOf(date)
	p, err := s.periodRepo.FindPeriodByDate(ctx, tenantID, day)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if s.mode == domain.PeriodModeStrict {
			return nil, fmt.Errorf("%w: tenant %s has no period for %s", apperrors.ErrPeriodNotFound, tenantID, day.Format(time.DateOnly))
		}
		p, err = s.createYearPeriod(ctx, tenantID, day)
		if err != nil {
			return nil, err
		}
	}
	if p.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: %s falls in period %s (%s to %s)", apperrors.ErrPeriodClosed,
			day.Format(time.DateOnly), p.PeriodID, p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly))
	}
	return p, nil
}

// createYearPeriod is the lenient-mode fallback. A concurrent creator winning the
// insert is not an error; the row it created is returned.
func (s *periodService) createYearPeriod(ctx context.Context, tenantID string, day time.Time) (*domain.AccountingPeriod, error) {
	p := domain.AccountingPeriod{
		PeriodID:    uuid.NewString(),
		TenantID:    tenantID,
		StartDate:   time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.PeriodOpen,
		AuditFields: domain.NewAuditFields("system:period-guard", s.Now()),
	}
	if err := s.periodRepo.CreatePeriod(ctx, p); err != nil && !errors.Is(err, apperrors.ErrConflict) {
		return nil, err
	}
	found, err := s.periodRepo.FindPeriodByDate(ctx, tenantID, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Another period overlaps the calendar year without covering this day.
			return nil, fmt.Errorf("%w: could not create a lenient period for %s", apperrors.ErrPeriodNotFound, day.Format(time.DateOnly))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Lenient mode created accounting period",
		slog.String("tenant_id", tenantID), slog.String("period_id", found.PeriodID))
	return found, nil
}

func (s *periodService) CreatePeriod(ctx context.Context, tenantID string, start, end time.Time, actor string) (*domain.AccountingPeriod, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: period end %s is before start %s", apperrors.ErrValidation,
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	latest, err := s.periodRepo.FindLatestPeriod(ctx, tenantID)
	switch {
	case err == nil:
		if want := latest.SuccessorStart(); !start.Equal(want) {
			return nil, fmt.Errorf("%w: next period must start on %s, got %s", apperrors.ErrValidation,
				want.Format(time.DateOnly), start.Format(time.DateOnly))
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	p := domain.AccountingPeriod{
		PeriodID:    uuid.NewString(),
		TenantID:    tenantID,
		StartDate:   start,
		EndDate:     end,
		Status:      domain.PeriodOpen,
		AuditFields: domain.NewAuditFields(actor, s.Now()),
	}
	if err := s.periodRepo.CreatePeriod(ctx, p); err != nil {
		s.LogError(ctx, err, "Failed to create period", slog.String("tenant_id", tenantID))
		return nil, err
	}
	s.LogInfo(ctx, "Accounting period created", slog.String("tenant_id", tenantID), slog.String("period_id", p.PeriodID),
		slog.String("start", start.Format(time.DateOnly)), slog.String("end", end.Format(time.DateOnly)))
	return &p, nil
}

func (s *periodService) ClosePeriod(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error) {
	var closed *domain.AccountingPeriod
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.periodRepo.LockPeriodForUpdate(ctx, tenantID, periodID)
		if err != nil {
			return err
		}
		if p.Status != domain.PeriodOpen {
			return fmt.Errorf("%w: period %s is already %s", apperrors.ErrConflict, periodID, p.Status)
		}

		drafts, err := s.journalRepo.CountDraftsInRange(ctx, tenantID, p.StartDate, p.EndDate)
		if err != nil {
			return err
		}
		if drafts > 0 {
			return fmt.Errorf("%w: period %s still has %d draft journals", apperrors.ErrConflict, periodID, drafts)
		}

		successor, err := s.periodRepo.FindPeriodStartingOn(ctx, tenantID, p.SuccessorStart())
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: period %s has no successor starting %s", apperrors.ErrValidation,
					periodID, p.SuccessorStart().Format(time.DateOnly))
			}
			return err
		}

		balances, err := s.endingBalances(ctx, p)
		if err != nil {
			return err
		}
		now := s.Now()
		snapshot := make([]domain.OpeningBalance, 0, len(balances))
		for accountID, bal := range balances {
			snapshot = append(snapshot, domain.OpeningBalance{
				PeriodID:  successor.PeriodID,
				TenantID:  tenantID,
				AccountID: accountID,
				Balance:   bal,
				CreatedAt: now,
			})
		}
		if err := s.periodRepo.DeleteOpeningBalances(ctx, tenantID, successor.PeriodID); err != nil {
			return err
		}
		if err := s.periodRepo.SaveOpeningBalances(ctx, snapshot); err != nil {
			return err
		}

		if err := s.periodRepo.UpdatePeriodStatus(ctx, portsrepo.PeriodStatusUpdate{
			TenantID: tenantID, PeriodID: periodID,
			From: domain.PeriodOpen, To: domain.PeriodClosed,
			Actor: actor, Reason: reason, At: now,
		}); err != nil {
			return err
		}
		closed, err = s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to close period", slog.String("tenant_id", tenantID), slog.String("period_id", periodID))
		return nil, err
	}
	s.LogInfo(ctx, "Accounting period closed", slog.String("tenant_id", tenantID), slog.String("period_id", periodID), slog.String("actor", actor))
	return closed, nil
}

// endingBalances computes each account's balance at the end of p, signed by its normal
// balance. The period's opening snapshot is used when present, otherwise every posting
// since genesis is summed.
func (s *periodService) endingBalances(ctx context.Context, p *domain.AccountingPeriod) (map[string]decimal.Decimal, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	opening, err := s.periodRepo.ListOpeningBalances(ctx, p.TenantID, p.PeriodID)
	if err != nil {
		return nil, err
	}

	filter := domain.MovementFilter{To: p.EndDate}
	base := make(map[string]decimal.Decimal, len(opening))
	if len(opening) > 0 {
		start := p.StartDate
		filter.From = &start
		for _, ob := range opening {
			base[ob.AccountID] = ob.Balance
		}
	}

	movements, err := s.journalRepo.SumPostedMovements(ctx, p.TenantID, filter)
	if err != nil {
		return nil, err
	}

	out := make(map[string]decimal.Decimal, len(accounts))
	for _, acc := range accounts {
		bal := base[acc.AccountID]
		if m, ok := movements[acc.AccountID]; ok {
			bal = bal.Add(accounting.SignedAmount(m.Debit, m.Credit, acc.NormalBalance))
		}
		out[acc.AccountID] = bal
	}
	return out, nil
}

func (s *periodService) ReopenPeriod(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error) {
	var reopened *domain.AccountingPeriod
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.periodRepo.LockPeriodForUpdate(ctx, tenantID, periodID)
		if err != nil {
			return err
		}
		if p.Status != domain.PeriodClosed {
			return fmt.Errorf("%w: period %s is not closed", apperrors.ErrConflict, periodID)
		}

		successor, err := s.periodRepo.FindPeriodStartingOn(ctx, tenantID, p.SuccessorStart())
		switch {
		case err == nil:
			if successor.Status == domain.PeriodClosed {
				return fmt.Errorf("%w: successor %s of period %s", apperrors.ErrSuccessorAlreadyClosed, successor.PeriodID, periodID)
			}
			if err := s.periodRepo.DeleteOpeningBalances(ctx, tenantID, successor.PeriodID); err != nil {
				return err
			}
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		if err := s.periodRepo.UpdatePeriodStatus(ctx, portsrepo.PeriodStatusUpdate{
			TenantID: tenantID, PeriodID: periodID,
			From: domain.PeriodClosed, To: domain.PeriodOpen,
			Actor: actor, Reason: reason, At: s.Now(),
		}); err != nil {
			return err
		}
		reopened, err = s.periodRepo.FindPeriodByID(ctx, tenantID, periodID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reopen period", slog.String("tenant_id", tenantID), slog.String("period_id", periodID))
		return nil, err
	}
	s.LogInfo(ctx, "Accounting period reopened", slog.String("tenant_id", tenantID), slog.String("period_id", periodID), slog.String("actor", actor))
	return reopened, nil
}

func (s *periodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, tenantID)
}

func (s *periodService) OpeningBalances(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error) {
	if _, err := s.periodRepo.FindPeriodByID(ctx, tenantID, periodID); err != nil {
		return nil, err
	}
	return s.periodRepo.ListOpeningBalances(ctx, tenantID, periodID)
}
