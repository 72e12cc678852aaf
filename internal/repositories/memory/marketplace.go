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

var _ portsrepo.MarketplaceRepositoryFacade = (*Store)(nil)

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.MarketplaceTransaction, error) {
	defer s.lock(ctx)()
	t, ok := s.st.txns[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: marketplace transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &t, nil
}

func (s *Store) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.MarketplaceTransaction, error) {
	defer s.lock(ctx)()
	id, ok := s.st.txnByKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: no transaction for idempotency key", apperrors.ErrNotFound)
	}
	t := s.st.txns[id]
	return &t, nil
}

func (s *Store) ListStuck(ctx context.Context, statuses []domain.TransactionStatus, olderThan time.Time) ([]domain.MarketplaceTransaction, error) {
	defer s.lock(ctx)()
	var out []domain.MarketplaceTransaction
	for _, t := range s.st.txns {
		if slices.Contains(statuses, t.Status) && !t.UpdatedAt.After(olderThan) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (s *Store) InsertTransaction(ctx context.Context, txn domain.MarketplaceTransaction) (bool, error) {
	defer s.lock(ctx)()
	if _, exists := s.st.txns[txn.TransactionID]; exists {
		return false, fmt.Errorf("%w: marketplace transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	if txn.IdempotencyKey != nil {
		if _, taken := s.st.txnByKey[*txn.IdempotencyKey]; taken {
			return false, nil
		}
		s.st.txnByKey[*txn.IdempotencyKey] = txn.TransactionID
	}
	s.st.txns[txn.TransactionID] = txn
	return true, nil
}

func (s *Store) Transition(ctx context.Context, transactionID string, u domain.TransitionUpdate) (*domain.MarketplaceTransaction, error) {
	defer s.lock(ctx)()
	t, ok := s.st.txns[transactionID]
	if !ok {
		return nil, fmt.Errorf("%w: marketplace transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if !slices.Contains(u.From, t.Status) {
		return nil, fmt.Errorf("%w: transaction %s is %s, expected one of %v",
			apperrors.ErrInvalidStateTransition, transactionID, t.Status, u.From)
	}

	at := u.At
	t.Status = u.To
	t.UpdatedAt = at
	if u.JournalID != nil {
		t.JournalID = u.JournalID
	}
	if u.SettlementJournalID != nil {
		t.SettlementJournalID = u.SettlementJournalID
	}
	if u.ReversalJournalID != nil {
		t.ReversalJournalID = u.ReversalJournalID
	}
	if u.EntityID != nil {
		t.EntityID = *u.EntityID
	}
	if u.ReversalReason != nil {
		t.ReversalReason = u.ReversalReason
	}
	switch u.To {
	case domain.TxFulfilled:
		t.FulfilledAt = &at
	case domain.TxSettled:
		t.SettledAt = &at
	case domain.TxReversed:
		t.ReversedAt = &at
	}
	s.st.txns[transactionID] = t
	return &t, nil
}
