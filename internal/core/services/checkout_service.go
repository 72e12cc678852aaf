package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
)

// fulfillFunc runs the channel's fulfillment for a lock journal.
type fulfillFunc func(ctx context.Context, journalID string) (*domain.OperationalRecord, error)

func (s *marketplaceService) CheckoutRetail(ctx context.Context, tenantID, actor string, order domain.RetailOrder, idempotencyKey *string) (*domain.CheckoutResult, error) {
	if s.retail == nil {
		return nil, fmt.Errorf("%w: retail channel is not configured", apperrors.ErrValidation)
	}
	plan, err := s.retail.PrepareCheckout(ctx, tenantID, order)
	if err != nil {
		return nil, err
	}
	return s.checkout(ctx, tenantID, actor, domain.ChannelRetail, plan, idempotencyKey,
		func(ctx context.Context, journalID string) (*domain.OperationalRecord, error) {
			return s.retail.Fulfill(ctx, tenantID, journalID, order)
		})
}

func (s *marketplaceService) CheckoutPpob(ctx context.Context, tenantID, actor string, order domain.PpobOrder, idempotencyKey *string) (*domain.CheckoutResult, error) {
	if s.ppob == nil {
		return nil, fmt.Errorf("%w: ppob channel is not configured", apperrors.ErrValidation)
	}
	plan, err := s.ppob.PrepareCheckout(ctx, tenantID, order)
	if err != nil {
		return nil, err
	}
	return s.checkout(ctx, tenantID, actor, domain.ChannelPpob, plan, idempotencyKey,
		func(ctx context.Context, journalID string) (*domain.OperationalRecord, error) {
			return s.ppob.Fulfill(ctx, tenantID, journalID, order)
		})
}

// checkout advances the transaction from whatever state is persisted until it is
// settled or reversed. A step that loses a compare-and-write reloads the row and
// carries on from the winner's state. Any other failure once funds are locked
// reverses the transaction before the failure is returned.
func (s *marketplaceService) checkout(ctx context.Context, tenantID, actor string, channel domain.ChannelType, plan *domain.CheckoutPlan, key *string, fulfill fulfillFunc) (*domain.CheckoutResult, error) {
	txn, err := s.CreateTransaction(ctx, tenantID, channel, plan.TotalAmount, actor, plan.ReferenceID, key)
	if err != nil {
		return nil, err
	}

	var record *domain.OperationalRecord
	for step := 0; step < s.resumeAttempts; step++ {
		var next *domain.MarketplaceTransaction
		var stepErr error

		switch txn.Status {
		case domain.TxInitiated:
			next, stepErr = s.LockJournal(ctx, txn.TransactionID, actor, txn.ReferenceID, plan.Payments)
		case domain.TxJournalLocked:
			record, stepErr = fulfill(ctx, *txn.JournalID)
			if stepErr == nil {
				next, stepErr = s.MarkFulfilled(ctx, txn.TransactionID, *record)
			}
		case domain.TxFulfilled:
			next, stepErr = s.SettleTransaction(ctx, txn.TransactionID, actor)
		case domain.TxSettled:
			if record == nil {
				record = operationalFromTxn(txn)
			}
			return &domain.CheckoutResult{Transaction: *txn, Operational: record}, nil
		case domain.TxReversed:
			reason := ""
			if txn.ReversalReason != nil {
				reason = *txn.ReversalReason
			}
			return nil, fmt.Errorf("%w: transaction %s: %s", apperrors.ErrTransactionReversed, txn.TransactionID, reason)
		default:
			return nil, apperrors.NewAppError(500, "unknown transaction status "+string(txn.Status), apperrors.ErrInternal)
		}

		if stepErr == nil {
			txn = next
			continue
		}
		if errors.Is(stepErr, apperrors.ErrInvalidStateTransition) {
			s.LogDebug(ctx, "Checkout step lost a race, reloading", txnAttrs(txn)...)
			if txn, err = s.repo.FindTransactionByID(ctx, txn.TransactionID); err != nil {
				return nil, err
			}
			continue
		}
		if txn.Status == domain.TxInitiated {
			// Nothing is locked yet; a retry resumes from here.
			return nil, stepErr
		}
		return nil, s.compensate(ctx, txn, actor, stepErr)
	}
	return nil, fmt.Errorf("%w: transaction %s still %s after %d steps",
		apperrors.ErrConflict, txn.TransactionID, txn.Status, s.resumeAttempts)
}

// compensate reverses a transaction whose checkout failed after the lock and
// returns the original failure. The reversal runs even if ctx was cancelled.
func (s *marketplaceService) compensate(ctx context.Context, txn *domain.MarketplaceTransaction, actor string, cause error) error {
	s.LogWarn(ctx, "Checkout failed after funds were locked, reversing", append(txnAttrs(txn), slog.String("error", cause.Error()))...)
	if _, err := s.ReverseTransaction(context.WithoutCancel(ctx), txn.TransactionID, actor, "checkout failed: "+cause.Error()); err != nil {
		s.LogError(ctx, err, "Automatic reversal failed, leaving transaction to the reconciler", txnAttrs(txn)...)
		return fmt.Errorf("%w (automatic reversal failed: %v)", cause, err)
	}
	return cause
}

func operationalFromTxn(txn *domain.MarketplaceTransaction) *domain.OperationalRecord {
	if txn.IsPending() {
		return nil
	}
	rec := &domain.OperationalRecord{
		ID:       txn.EntityID,
		TenantID: txn.TenantID,
		Channel:  txn.Type,
	}
	if txn.JournalID != nil {
		rec.JournalID = *txn.JournalID
	}
	if txn.FulfilledAt != nil {
		rec.CreatedAt = *txn.FulfilledAt
	}
	return rec
}
