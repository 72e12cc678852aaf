package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/marketplace_ledger/internal/models"
	"github.com/SscSPs/marketplace_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const marketplaceColumns = `transaction_id, tenant_id, type, status, journal_id, settlement_journal_id, reversal_journal_id,
	reference_id, entity_id, amount, idempotency_key, created_by, created_at, updated_at,
	fulfilled_at, settled_at, reversed_at, reversal_reason`

type PgxMarketplaceRepository struct {
	BaseRepository
}

func newPgxMarketplaceRepository(pool *pgxpool.Pool) *PgxMarketplaceRepository {
	return &PgxMarketplaceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MarketplaceRepositoryFacade = (*PgxMarketplaceRepository)(nil)

func (r *PgxMarketplaceRepository) queryOne(ctx context.Context, notFound string, query string, args ...any) (*domain.MarketplaceTransaction, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query marketplace transaction", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.MarketplaceTransaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, notFound)
		}
		return nil, apperrors.NewAppError(500, "failed to scan marketplace transaction", err)
	}
	d := mapping.ToDomainMarketplaceTransaction(m)
	return &d, nil
}

func (r *PgxMarketplaceRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.MarketplaceTransaction, error) {
	query := `SELECT ` + marketplaceColumns + ` FROM marketplace_transactions WHERE transaction_id::text = $1;`
	return r.queryOne(ctx, "marketplace transaction "+transactionID, query, transactionID)
}

func (r *PgxMarketplaceRepository) FindTransactionByIdempotencyKey(ctx context.Context, key string) (*domain.MarketplaceTransaction, error) {
	query := `SELECT ` + marketplaceColumns + ` FROM marketplace_transactions WHERE idempotency_key = $1;`
	return r.queryOne(ctx, "no transaction for idempotency key", query, key)
}

// ListStuck scans all tenants; the partial index on (status, updated_at) serves it.
func (r *PgxMarketplaceRepository) ListStuck(ctx context.Context, statuses []domain.TransactionStatus, olderThan time.Time) ([]domain.MarketplaceTransaction, error) {
	query := `SELECT ` + marketplaceColumns + ` FROM marketplace_transactions
		WHERE status = ANY($1) AND updated_at <= $2 ORDER BY updated_at;`
	rows, err := r.db(ctx).Query(ctx, query, statusStrings(statuses), olderThan)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list stuck transactions", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.MarketplaceTransaction])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan stuck transactions", err)
	}
	out := make([]domain.MarketplaceTransaction, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainMarketplaceTransaction(m)
	}
	return out, nil
}

// InsertTransaction inserts the row unless its idempotency key is taken.
func (r *PgxMarketplaceRepository) InsertTransaction(ctx context.Context, txn domain.MarketplaceTransaction) (bool, error) {
	m := mapping.ToModelMarketplaceTransaction(txn)
	query := `
		INSERT INTO marketplace_transactions (` + marketplaceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (idempotency_key) DO NOTHING;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID,
		m.TenantID,
		m.Type,
		m.Status,
		m.JournalID,
		m.SettlementJournalID,
		m.ReversalJournalID,
		m.ReferenceID,
		m.EntityID,
		m.Amount,
		m.IdempotencyKey,
		m.CreatedBy,
		m.CreatedAt,
		m.UpdatedAt,
		m.FulfilledAt,
		m.SettledAt,
		m.ReversedAt,
		m.ReversalReason,
	)
	if err != nil {
		return false, translate(err, "failed to insert marketplace transaction "+m.TransactionID)
	}
	return tag.RowsAffected() == 1, nil
}

// Transition writes the update only while the row is in one of update.From.
func (r *PgxMarketplaceRepository) Transition(ctx context.Context, transactionID string, u domain.TransitionUpdate) (*domain.MarketplaceTransaction, error) {
	query := `
		UPDATE marketplace_transactions SET
			status = $3,
			journal_id = COALESCE($4, journal_id),
			settlement_journal_id = COALESCE($5, settlement_journal_id),
			reversal_journal_id = COALESCE($6, reversal_journal_id),
			entity_id = COALESCE($7, entity_id),
			reversal_reason = COALESCE($8, reversal_reason),
			updated_at = $9,
			fulfilled_at = CASE WHEN $3 = 'fulfilled' THEN $9 ELSE fulfilled_at END,
			settled_at = CASE WHEN $3 = 'settled' THEN $9 ELSE settled_at END,
			reversed_at = CASE WHEN $3 = 'reversed' THEN $9 ELSE reversed_at END
		WHERE transaction_id::text = $1 AND status = ANY($2)
		RETURNING ` + marketplaceColumns
	txn, err := r.queryOne(ctx, "marketplace transaction "+transactionID, query,
		transactionID,
		statusStrings(u.From),
		string(u.To),
		u.JournalID,
		u.SettlementJournalID,
		u.ReversalJournalID,
		u.EntityID,
		u.ReversalReason,
		u.At,
	)
	if err == nil {
		return txn, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	current, err := r.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: transaction %s is %s, expected one of %v",
		apperrors.ErrInvalidStateTransition, transactionID, current.Status, u.From)
}

func statusStrings(statuses []domain.TransactionStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
