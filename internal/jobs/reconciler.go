// Package jobs holds the background loops started next to the HTTP server.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/platform/lock"
)

// ReconcileLockKey is the lock every replica competes for before a scan.
const ReconcileLockKey = "marketplace-ledger:reconciler"

// ReconcileRunner periodically resolves stuck marketplace transactions.
type ReconcileRunner struct {
	svc       portssvc.ReconciliationSvc
	locker    lock.Locker
	interval  time.Duration
	threshold int
	logger    *slog.Logger
}

func NewReconcileRunner(svc portssvc.ReconciliationSvc, locker lock.Locker, interval time.Duration, thresholdMinutes int, logger *slog.Logger) *ReconcileRunner {
	if logger == nil {
		logger = slog.Default()
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &ReconcileRunner{
		svc:       svc,
		locker:    locker,
		interval:  interval,
		threshold: thresholdMinutes,
		logger:    logger,
	}
}

// Run ticks until ctx is cancelled. A failed scan is logged and retried on the next tick.
func (r *ReconcileRunner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "Reconciler started",
		slog.Duration("interval", r.interval), slog.Int("threshold_minutes", r.threshold))
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Reconciler stopped")
			return nil
		case <-ticker.C:
			if _, _, err := r.RunOnce(ctx); err != nil {
				r.logger.ErrorContext(ctx, "Reconcile run failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce performs a single scan under the lock. ran is false when another replica holds it.
func (r *ReconcileRunner) RunOnce(ctx context.Context) (outcomes []domain.ReconcileOutcome, ran bool, err error) {
	// The lock outlives a slow scan by a full interval at most.
	ttl := r.interval
	if ttl < time.Minute {
		ttl = time.Minute
	}
	ran, err = r.locker.TryRun(ctx, ReconcileLockKey, ttl, func(ctx context.Context) error {
		var runErr error
		outcomes, runErr = r.svc.Reconcile(ctx, r.threshold)
		return runErr
	})
	if err != nil || !ran {
		return nil, ran, err
	}

	counts := map[domain.ReconcileAction]int{}
	for _, o := range outcomes {
		counts[o.Action]++
	}
	if len(outcomes) > 0 {
		r.logger.InfoContext(ctx, "Reconcile run finished",
			slog.Int("reversed", counts[domain.ReconcileReversed]),
			slog.Int("settled", counts[domain.ReconcileSettled]),
			slog.Int("skipped", counts[domain.ReconcileSkipped]),
			slog.Int("failed", counts[domain.ReconcileFailed]))
	}
	return outcomes, true, nil
}
