package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// ReconcilerActor is recorded on every journal and transition the reconciler makes.
const ReconcilerActor = "system:reconciler"

const reconcileConcurrency = 4

var stuckStatuses = []domain.TransactionStatus{domain.TxJournalLocked, domain.TxFulfilled}

type reconciliationService struct {
	BaseService
	repo portsrepo.MarketplaceReader
	saga portssvc.SagaSvc
}

// NewReconciliationService creates the scanner that resolves transactions left between lock and settlement.
func NewReconciliationService(repo portsrepo.MarketplaceReader, saga portssvc.SagaSvc, opts ...Option) portssvc.ReconciliationSvc {
	svc := &reconciliationService{repo: repo, saga: saga}
	svc.apply(opts)
	return svc
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) ListStuck(ctx context.Context, olderThanMinutes int) ([]domain.MarketplaceTransaction, error) {
	if olderThanMinutes < 0 {
		return nil, fmt.Errorf("%w: threshold must not be negative, got %d", apperrors.ErrValidation, olderThanMinutes)
	}
	cutoff := s.Now().Add(-time.Duration(olderThanMinutes) * time.Minute)
	return s.repo.ListStuck(ctx, stuckStatuses, cutoff)
}

// Reconcile reverses locked transactions whose fulfillment never started and settles
// fulfilled ones. Each transaction is handled on its own; a failure is reported in its
// outcome and does not stop the others.
func (s *reconciliationService) Reconcile(ctx context.Context, olderThanMinutes int) ([]domain.ReconcileOutcome, error) {
	stuck, err := s.ListStuck(ctx, olderThanMinutes)
	if err != nil {
		return nil, err
	}

	outcomes := make([]domain.ReconcileOutcome, len(stuck))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reconcileConcurrency)
	for i := range stuck {
		i := i
		txn := stuck[i]
		g.Go(func() error {
			outcomes[i] = s.resolve(gctx, txn)
			return nil
		})
	}
	_ = g.Wait()

	var failed int
	for _, o := range outcomes {
		if o.Action == domain.ReconcileFailed {
			failed++
		}
	}
	s.LogInfo(ctx, "Reconciliation run finished",
		slog.Int("threshold_minutes", olderThanMinutes),
		slog.Int("examined", len(outcomes)),
		slog.Int("failed", failed))
	return outcomes, nil
}

func (s *reconciliationService) resolve(ctx context.Context, txn domain.MarketplaceTransaction) domain.ReconcileOutcome {
	out := domain.ReconcileOutcome{
		TransactionID:  txn.TransactionID,
		TenantID:       txn.TenantID,
		PreviousStatus: txn.Status,
	}

	var err error
	switch {
	case txn.Status == domain.TxJournalLocked && txn.IsPending():
		_, err = s.saga.ReverseTransaction(ctx, txn.TransactionID, ReconcilerActor, "reconciler: fulfillment never completed")
		out.Action = domain.ReconcileReversed
	case txn.Status == domain.TxFulfilled:
		_, err = s.saga.SettleTransaction(ctx, txn.TransactionID, ReconcilerActor)
		out.Action = domain.ReconcileSettled
	default:
		out.Action = domain.ReconcileSkipped
	}

	attrs := []any{
		slog.String("tenant_id", txn.TenantID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("previous_status", string(txn.Status)),
	}
	if err != nil {
		out.Action = domain.ReconcileFailed
		out.Error = err.Error()
		s.LogError(ctx, err, "Reconciliation of transaction failed", attrs...)
		return out
	}
	s.LogInfo(ctx, "Reconciled transaction", append(attrs, slog.String("action", string(out.Action)))...)
	return out
}
