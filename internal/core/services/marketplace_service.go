package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultResumeAttempts = 8

// marketplaceService drives marketplace transactions through the escrow saga.
// It holds no mutable state; every transition is a compare-and-write in the store.
type marketplaceService struct {
	BaseService
	tx             portsrepo.TxManager
	repo           portsrepo.MarketplaceRepositoryFacade
	journals       portssvc.JournalSvcFacade
	retail         portssvc.RetailChannel
	ppob           portssvc.PpobChannel
	resumeAttempts int
}

// NewMarketplaceService creates the saga orchestrator. resumeAttempts bounds how many
// state steps a single checkout call takes before giving up; values below 5 use the default.
func NewMarketplaceService(
	tx portsrepo.TxManager,
	repo portsrepo.MarketplaceRepositoryFacade,
	journals portssvc.JournalSvcFacade,
	retail portssvc.RetailChannel,
	ppob portssvc.PpobChannel,
	resumeAttempts int,
	opts ...Option,
) portssvc.MarketplaceSvcFacade {
	if resumeAttempts < 5 {
		resumeAttempts = defaultResumeAttempts
	}
	svc := &marketplaceService{
		tx:             tx,
		repo:           repo,
		journals:       journals,
		retail:         retail,
		ppob:           ppob,
		resumeAttempts: resumeAttempts,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.MarketplaceSvcFacade = (*marketplaceService)(nil)

func txnAttrs(t *domain.MarketplaceTransaction) []any {
	return []any{
		slog.String("tenant_id", t.TenantID),
		slog.String("transaction_id", t.TransactionID),
		slog.String("status", string(t.Status)),
	}
}

func (s *marketplaceService) CreateTransaction(ctx context.Context, tenantID string, channel domain.ChannelType, amount decimal.Decimal, actor, referenceID string, idempotencyKey *string) (*domain.MarketplaceTransaction, error) {
	if channel != domain.ChannelRetail && channel != domain.ChannelPpob {
		return nil, fmt.Errorf("%w: unknown channel %q", apperrors.ErrValidation, channel)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %s", apperrors.ErrLedgerIntegrityViolation, amount)
	}
	if idempotencyKey != nil && *idempotencyKey == "" {
		idempotencyKey = nil
	}

	if idempotencyKey != nil {
		existing, err := s.repo.FindTransactionByIdempotencyKey(ctx, *idempotencyKey)
		switch {
		case err == nil:
			return s.sameRequest(existing, tenantID, channel, amount)
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
	}

	now := s.Now()
	txn := domain.MarketplaceTransaction{
		TransactionID:  uuid.NewString(),
		TenantID:       tenantID,
		Type:           channel,
		Status:         domain.TxInitiated,
		ReferenceID:    referenceID,
		EntityID:       domain.PendingEntityID,
		Amount:         amount,
		IdempotencyKey: idempotencyKey,
		CreatedBy:      actor,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	inserted, err := s.repo.InsertTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to create marketplace transaction", slog.String("tenant_id", tenantID))
		return nil, err
	}
	if !inserted {
		// Lost the race on the idempotency key.
		existing, err := s.repo.FindTransactionByIdempotencyKey(ctx, *idempotencyKey)
		if err != nil {
			return nil, err
		}
		return s.sameRequest(existing, tenantID, channel, amount)
	}
	s.LogInfo(ctx, "Marketplace transaction created", append(txnAttrs(&txn), slog.String("amount", amount.String()))...)
	return &txn, nil
}

// sameRequest returns the row found by idempotency key, refusing a key reused for a different request.
func (s *marketplaceService) sameRequest(existing *domain.MarketplaceTransaction, tenantID string, channel domain.ChannelType, amount decimal.Decimal) (*domain.MarketplaceTransaction, error) {
	if existing.TenantID != tenantID || existing.Type != channel || !existing.Amount.Equal(amount) {
		return nil, fmt.Errorf("%w: idempotency key already used for transaction %s with a different request",
			apperrors.ErrConflict, existing.TransactionID)
	}
	return existing, nil
}

func (s *marketplaceService) LockJournal(ctx context.Context, transactionID, actor, referenceID string, payments []domain.PaymentLine) (*domain.MarketplaceTransaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TxInitiated {
		return nil, fmt.Errorf("%w: lock requires %s, transaction %s is %s",
			apperrors.ErrInvalidStateTransition, domain.TxInitiated, transactionID, txn.Status)
	}
	paid := domain.SumPayments(payments)
	if paid.Sub(txn.Amount).Abs().GreaterThan(accounting.BalanceTolerance) {
		return nil, fmt.Errorf("%w: payments total %s but transaction %s is %s",
			apperrors.ErrLedgerIntegrityViolation, paid, transactionID, txn.Amount)
	}

	intent, err := s.journals.BuildEscrowLock(ctx, txn.TenantID, actor, domain.EscrowLock{
		EventMeta: domain.EventMeta{
			TransactionDate: s.Now(),
			ReferenceID:     referenceID,
			Description:     fmt.Sprintf("Escrow lock for %s transaction %s", txn.Type, txn.TransactionID),
		},
		Payments: payments,
	})
	if err != nil {
		return nil, err
	}

	var locked *domain.MarketplaceTransaction
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		journalID, err := s.journals.PostJournal(ctx, intent)
		if err != nil {
			return err
		}
		locked, err = s.repo.Transition(ctx, transactionID, domain.TransitionUpdate{
			From:      []domain.TransactionStatus{domain.TxInitiated},
			To:        domain.TxJournalLocked,
			JournalID: &journalID,
			At:        s.Now(),
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to lock funds in escrow", txnAttrs(txn)...)
		return nil, err
	}
	s.LogInfo(ctx, "Funds locked in escrow", append(txnAttrs(locked), slog.String("journal_id", *locked.JournalID))...)
	return locked, nil
}

func (s *marketplaceService) MarkFulfilled(ctx context.Context, transactionID string, record domain.OperationalRecord) (*domain.MarketplaceTransaction, error) {
	if record.ID == "" || record.ID == domain.PendingEntityID {
		return nil, fmt.Errorf("%w: operational record id is required", apperrors.ErrValidation)
	}
	entityID := record.ID
	fulfilled, err := s.repo.Transition(ctx, transactionID, domain.TransitionUpdate{
		From:     []domain.TransactionStatus{domain.TxJournalLocked},
		To:       domain.TxFulfilled,
		EntityID: &entityID,
		At:       s.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Marketplace transaction fulfilled", append(txnAttrs(fulfilled), slog.String("entity_id", entityID))...)
	return fulfilled, nil
}

func (s *marketplaceService) SettleTransaction(ctx context.Context, transactionID, actor string) (*domain.MarketplaceTransaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status == domain.TxSettled {
		return txn, nil
	}
	if txn.Status != domain.TxFulfilled {
		return nil, fmt.Errorf("%w: settle requires %s, transaction %s is %s",
			apperrors.ErrInvalidStateTransition, domain.TxFulfilled, transactionID, txn.Status)
	}

	intent, err := s.settlementIntent(ctx, txn, actor)
	if err != nil {
		return nil, err
	}

	var settled *domain.MarketplaceTransaction
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		journalID, err := s.journals.PostJournal(ctx, intent)
		if err != nil {
			return err
		}
		settled, err = s.repo.Transition(ctx, transactionID, domain.TransitionUpdate{
			From:                []domain.TransactionStatus{domain.TxFulfilled},
			To:                  domain.TxSettled,
			SettlementJournalID: &journalID,
			At:                  s.Now(),
		})
		return err
	})
	if err != nil {
		if current, ok := s.reachedAfterRace(ctx, transactionID, err, domain.TxSettled); ok {
			return current, nil
		}
		s.LogError(ctx, err, "Failed to settle marketplace transaction", txnAttrs(txn)...)
		return nil, err
	}
	s.LogInfo(ctx, "Marketplace transaction settled", append(txnAttrs(settled), slog.String("settlement_journal_id", *settled.SettlementJournalID))...)
	return settled, nil
}

func (s *marketplaceService) settlementIntent(ctx context.Context, txn *domain.MarketplaceTransaction, actor string) (*domain.JournalIntent, error) {
	calc, err := s.calculatorFor(txn.Type)
	if err != nil {
		return nil, err
	}
	lines, err := calc.ComputeSettlementLines(ctx, txn.TenantID, txn.EntityID)
	if err != nil {
		return nil, err
	}
	ev := domain.Settlement{
		EventMeta: domain.EventMeta{
			TransactionDate: s.Now(),
			ReferenceID:     txn.ReferenceID,
			Description:     fmt.Sprintf("Settlement of %s transaction %s", txn.Type, txn.TransactionID),
		},
		Channel:      txn.Type,
		EscrowAmount: txn.Amount,
		Lines:        lines,
	}
	if txn.Type == domain.ChannelPpob {
		return s.journals.BuildPpobSettlement(ctx, txn.TenantID, actor, ev)
	}
	return s.journals.BuildRetailSettlement(ctx, txn.TenantID, actor, ev)
}

func (s *marketplaceService) calculatorFor(channel domain.ChannelType) (portssvc.SettlementCalculator, error) {
	switch {
	case channel == domain.ChannelRetail && s.retail != nil:
		return s.retail, nil
	case channel == domain.ChannelPpob && s.ppob != nil:
		return s.ppob, nil
	}
	return nil, fmt.Errorf("%w: no settlement calculator for channel %q", apperrors.ErrValidation, channel)
}

func (s *marketplaceService) ReverseTransaction(ctx context.Context, transactionID, actor, reason string) (*domain.MarketplaceTransaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status == domain.TxReversed {
		return txn, nil
	}
	if txn.Status != domain.TxJournalLocked && txn.Status != domain.TxFulfilled {
		return nil, fmt.Errorf("%w: reverse requires %s or %s, transaction %s is %s",
			apperrors.ErrInvalidStateTransition, domain.TxJournalLocked, domain.TxFulfilled, transactionID, txn.Status)
	}
	if txn.JournalID == nil {
		return nil, apperrors.NewAppError(500, "locked transaction "+transactionID+" has no lock journal", apperrors.ErrInternal)
	}

	var reversed *domain.MarketplaceTransaction
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		void, err := s.journals.VoidJournal(ctx, txn.TenantID, *txn.JournalID, actor, reason)
		if err != nil {
			return err
		}
		r := reason
		reversed, err = s.repo.Transition(ctx, transactionID, domain.TransitionUpdate{
			From:              []domain.TransactionStatus{domain.TxJournalLocked, domain.TxFulfilled},
			To:                domain.TxReversed,
			ReversalJournalID: &void.JournalID,
			ReversalReason:    &r,
			At:                s.Now(),
		})
		return err
	})
	if err != nil {
		if current, ok := s.reachedAfterRace(ctx, transactionID, err, domain.TxReversed); ok {
			return current, nil
		}
		s.LogError(ctx, err, "Failed to reverse marketplace transaction", txnAttrs(txn)...)
		return nil, err
	}
	s.LogInfo(ctx, "Marketplace transaction reversed", append(txnAttrs(reversed),
		slog.String("reversal_journal_id", *reversed.ReversalJournalID), slog.String("reason", reason))...)
	return reversed, nil
}

// reachedAfterRace reports whether a failed transition failed only because a
// concurrent caller already moved the row to target.
func (s *marketplaceService) reachedAfterRace(ctx context.Context, transactionID string, err error, target domain.TransactionStatus) (*domain.MarketplaceTransaction, bool) {
	if !errors.Is(err, apperrors.ErrInvalidStateTransition) && !errors.Is(err, apperrors.ErrDuplicate) {
		return nil, false
	}
	current, findErr := s.repo.FindTransactionByID(ctx, transactionID)
	if findErr != nil || current.Status != target {
		return nil, false
	}
	return current, true
}

func (s *marketplaceService) GetTransaction(ctx context.Context, tenantID, transactionID string) (*domain.MarketplaceTransaction, error) {
	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("marketplace transaction " + transactionID + " not found")
	}
	return txn, nil
}
