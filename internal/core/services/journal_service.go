package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

// journalService provides the intent, posting and reversal layers of the ledger.
type journalService struct {
	BaseService
	tx          portsrepo.TxManager
	journalRepo portsrepo.JournalRepositoryFacade
	periodLock  portsrepo.PeriodLocker
	accountSvc  portssvc.AccountSvcFacade
	periodSvc   portssvc.PeriodGuardSvc
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	tx portsrepo.TxManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodLock portsrepo.PeriodLocker,
	accountSvc portssvc.AccountSvcFacade,
	periodSvc portssvc.PeriodGuardSvc,
	opts ...Option,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		tx:          tx,
		journalRepo: journalRepo,
		periodLock:  periodLock,
		accountSvc:  accountSvc,
		periodSvc:   periodSvc,
	}
	svc.apply(opts)
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateIntent(ctx context.Context, tenantID, actor string, input domain.IntentInput) (*domain.JournalIntent, error) {
	if err := accounting.ValidateIntentLines(input.Lines); err != nil {
		return nil, err
	}
	date := input.TransactionDate
	if date.IsZero() {
		date = s.Now()
	}
	if _, err := s.periodSvc.AssertOpen(ctx, tenantID, date); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(input.Lines))
	for _, l := range input.Lines {
		codes = append(codes, l.AccountCode)
	}
	accounts, err := s.accountSvc.ResolveAccounts(ctx, tenantID, codes)
	if err != nil {
		return nil, err
	}

	refType := input.ReferenceType
	if refType == "" {
		refType = domain.RefManual
	}
	journal := domain.Journal{
		JournalID:       uuid.NewString(),
		TenantID:        tenantID,
		BusinessUnit:    input.BusinessUnit,
		TransactionDate: domain.DateOf(date),
		Description:     strings.TrimSpace(input.Description),
		ReferenceID:     input.ReferenceID,
		ReferenceType:   refType,
		Status:          domain.JournalPosted,
		Lines:           make([]domain.JournalLine, 0, len(input.Lines)),
		AuditFields:     domain.NewAuditFields(actor, s.Now()),
	}
	for _, l := range input.Lines {
		journal.Lines = append(journal.Lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journal.JournalID,
			AccountID:   accounts[l.AccountCode].AccountID,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
		})
	}
	return &domain.JournalIntent{Journal: journal}, nil
}

func (s *journalService) PostJournal(ctx context.Context, intent *domain.JournalIntent) (string, error) {
	return s.persist(ctx, intent, domain.JournalPosted)
}

func (s *journalService) SaveDraft(ctx context.Context, intent *domain.JournalIntent) (string, error) {
	return s.persist(ctx, intent, domain.JournalDraft)
}

func (s *journalService) persist(ctx context.Context, intent *domain.JournalIntent, status domain.JournalStatus) (string, error) {
	if intent == nil {
		return "", fmt.Errorf("%w: nil journal intent", apperrors.ErrValidation)
	}
	j := intent.Journal
	j.Status = status
	if err := checkJournalBalance(j); err != nil {
		return "", err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lockOpenPeriod(ctx, j.TenantID, j.TransactionDate); err != nil {
			return err
		}
		return s.journalRepo.SaveJournal(ctx, j)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to persist journal",
			slog.String("tenant_id", j.TenantID), slog.String("journal_id", j.JournalID))
		return "", err
	}
	s.LogInfo(ctx, "Journal persisted",
		slog.String("tenant_id", j.TenantID),
		slog.String("journal_id", j.JournalID),
		slog.String("status", string(status)),
		slog.String("reference_type", string(j.ReferenceType)),
		slog.String("amount", j.TotalDebit().String()))
	return j.JournalID, nil
}

// lockOpenPeriod re-checks the period inside the write transaction and holds a
// share lock on it so a concurrent close waits for this posting.
func (s *journalService) lockOpenPeriod(ctx context.Context, tenantID string, date time.Time) error {
	p, err := s.periodLock.LockPeriodByDateForShare(ctx, tenantID, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		if p, err = s.periodSvc.AssertOpen(ctx, tenantID, date); err != nil {
			return err
		}
		p, err = s.periodLock.LockPeriodByDateForShare(ctx, tenantID, date)
	}
	if err != nil {
		return err
	}
	if p.Status == domain.PeriodClosed {
		return fmt.Errorf("%w: %s falls in closed period %s", apperrors.ErrPeriodClosed, date.Format(time.DateOnly), p.PeriodID)
	}
	return nil
}

// checkJournalBalance is the last balance check before a write.
func checkJournalBalance(j domain.Journal) error {
	lines := make([]domain.IntentLine, 0, len(j.Lines))
	for _, l := range j.Lines {
		code := l.AccountCode
		if code == "" {
			code = l.AccountID
		}
		lines = append(lines, domain.IntentLine{AccountCode: code, Debit: l.Debit, Credit: l.Credit})
	}
	return accounting.ValidateIntentLines(lines)
}

func (s *journalService) PostDraft(ctx context.Context, tenantID, journalID, actor string) (*domain.Journal, error) {
	var posted *domain.Journal
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		j, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
		if err != nil {
			return err
		}
		if j.Status != domain.JournalDraft {
			return fmt.Errorf("%w: journal %s is %s, not DRAFT", apperrors.ErrConflict, journalID, j.Status)
		}
		if err := s.lockOpenPeriod(ctx, tenantID, j.TransactionDate); err != nil {
			return err
		}
		if err := s.journalRepo.UpdateJournalStatus(ctx, tenantID, journalID, domain.JournalDraft, domain.JournalPosted, actor, s.Now()); err != nil {
			return err
		}
		posted, err = s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post draft", slog.String("tenant_id", tenantID), slog.String("journal_id", journalID))
		return nil, err
	}
	s.LogInfo(ctx, "Draft journal posted", slog.String("tenant_id", tenantID), slog.String("journal_id", journalID))
	return posted, nil
}

func (s *journalService) VoidJournal(ctx context.Context, tenantID, journalID, actor, reason string) (*domain.Journal, error) {
	original, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.JournalPosted {
		return nil, fmt.Errorf("%w: only posted journals can be voided, %s is %s", apperrors.ErrValidation, journalID, original.Status)
	}
	if original.ReferenceType == domain.RefJournalVoid {
		return nil, fmt.Errorf("%w: journal %s is itself a void", apperrors.ErrValidation, journalID)
	}
	if existing, err := s.findVoid(ctx, tenantID, journalID); err != nil || existing != nil {
		return existing, err
	}

	intent, err := s.voidIntent(ctx, original, actor, reason)
	if err != nil {
		return nil, err
	}
	if _, err := s.PostJournal(ctx, intent); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// A concurrent void won; hand back that one if it is visible from here.
			if existing, findErr := s.findVoid(ctx, tenantID, journalID); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	s.LogInfo(ctx, "Journal voided", slog.String("tenant_id", tenantID),
		slog.String("journal_id", journalID), slog.String("void_journal_id", intent.Journal.JournalID))
	v := intent.Journal
	return &v, nil
}

func (s *journalService) findVoid(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	v, err := s.journalRepo.FindJournalByReference(ctx, tenantID, domain.RefJournalVoid, journalID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

// voidIntent mirrors the original's lines on today's date. The accounts are
// reused as stored so a later deactivation cannot block a compensation.
func (s *journalService) voidIntent(ctx context.Context, original *domain.Journal, actor, reason string) (*domain.JournalIntent, error) {
	now := s.Now()
	if _, err := s.periodSvc.AssertOpen(ctx, original.TenantID, now); err != nil {
		return nil, err
	}
	desc := "Void of journal " + original.JournalID
	if reason = strings.TrimSpace(reason); reason != "" {
		desc += ": " + reason
	}
	void := domain.Journal{
		JournalID:       uuid.NewString(),
		TenantID:        original.TenantID,
		BusinessUnit:    original.BusinessUnit,
		TransactionDate: domain.DateOf(now),
		Description:     desc,
		ReferenceID:     original.JournalID,
		ReferenceType:   domain.RefJournalVoid,
		Status:          domain.JournalPosted,
		AuditFields:     domain.NewAuditFields(actor, now),
	}
	for _, l := range accounting.SwapLines(original.Lines) {
		l.LineID = uuid.NewString()
		l.JournalID = void.JournalID
		void.Lines = append(void.Lines, l)
	}
	return &domain.JournalIntent{Journal: void}, nil
}

func (s *journalService) GetJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	return s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
}

func (s *journalService) ListJournals(ctx context.Context, tenantID string, params domain.ListJournalsParams) (*domain.ListJournalsResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	if limit > maxJournalPageSize {
		limit = maxJournalPageSize
	}
	journals, next, err := s.journalRepo.ListJournals(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &domain.ListJournalsResult{Journals: journals, NextToken: next}, nil
}

func (s *journalService) AccountBalance(ctx context.Context, tenantID, code string, asOf time.Time) (decimal.Decimal, error) {
	acc, err := s.accountSvc.GetAccount(ctx, tenantID, code)
	if err != nil {
		return decimal.Zero, err
	}
	if asOf.IsZero() {
		asOf = s.Now()
	}
	movements, err := s.journalRepo.SumPostedMovements(ctx, tenantID, domain.MovementFilter{
		To:         domain.DateOf(asOf),
		AccountIDs: []string{acc.AccountID},
	})
	if err != nil {
		return decimal.Zero, err
	}
	m := movements[acc.AccountID]
	return accounting.SignedAmount(m.Debit, m.Credit, acc.NormalBalance), nil
}
