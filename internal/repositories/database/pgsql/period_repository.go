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

const periodColumns = `period_id, tenant_id, start_date, end_date, status, closed_by, closed_at, close_reason,
	reopened_by, reopened_at, reopen_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func (r *PgxPeriodRepository) queryOne(ctx context.Context, notFound string, query string, args ...any) (*domain.AccountingPeriod, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query period", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, notFound)
		}
		return nil, apperrors.NewAppError(500, "failed to scan period", err)
	}
	d := mapping.ToDomainPeriod(m)
	return &d, nil
}

func (r *PgxPeriodRepository) FindPeriodByDate(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods
		WHERE tenant_id = $1 AND $2::date BETWEEN start_date AND end_date;`
	return r.queryOne(ctx, "no period covers "+date.Format(time.DateOnly), query, tenantID, domain.DateOf(date))
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND period_id::text = $2;`
	return r.queryOne(ctx, "period "+periodID, query, tenantID, periodID)
}

func (r *PgxPeriodRepository) FindLatestPeriod(ctx context.Context, tenantID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods
		WHERE tenant_id = $1 ORDER BY end_date DESC LIMIT 1;`
	return r.queryOne(ctx, "tenant "+tenantID+" has no periods", query, tenantID)
}

func (r *PgxPeriodRepository) FindPeriodStartingOn(ctx context.Context, tenantID string, start time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 AND start_date = $2::date;`
	return r.queryOne(ctx, "no period starting "+start.Format(time.DateOnly), query, tenantID, domain.DateOf(start))
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE tenant_id = $1 ORDER BY start_date;`
	rows, err := r.db(ctx).Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan periods", err)
	}
	return mapping.ToDomainPeriodSlice(ms), nil
}

func (r *PgxPeriodRepository) ListOpeningBalances(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error) {
	query := `
		SELECT period_id, tenant_id, account_id, balance, created_at
		FROM opening_balances WHERE tenant_id = $1 AND period_id::text = $2;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list opening balances", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OpeningBalance])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan opening balances", err)
	}
	out := make([]domain.OpeningBalance, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainOpeningBalance(m)
	}
	return out, nil
}

// LockPeriodByDateForShare blocks a concurrent close of the period until the caller's transaction ends.
func (r *PgxPeriodRepository) LockPeriodByDateForShare(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods
		WHERE tenant_id = $1 AND $2::date BETWEEN start_date AND end_date FOR SHARE;`
	return r.queryOne(ctx, "no period covers "+date.Format(time.DateOnly), query, tenantID, domain.DateOf(date))
}

func (r *PgxPeriodRepository) LockPeriodForUpdate(ctx context.Context, tenantID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods
		WHERE tenant_id = $1 AND period_id::text = $2 FOR UPDATE;`
	return r.queryOne(ctx, "period "+periodID, query, tenantID, periodID)
}

// CreatePeriod inserts a period. Overlapping rows are skipped by ON CONFLICT so the
// surrounding transaction stays usable for a re-read.
func (r *PgxPeriodRepository) CreatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT DO NOTHING;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.PeriodID, m.TenantID, m.StartDate, m.EndDate, m.Status,
		m.ClosedBy, m.ClosedAt, m.CloseReason,
		m.ReopenedBy, m.ReopenedAt, m.ReopenReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translate(err, "failed to create period starting "+m.StartDate.Format(time.DateOnly))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period starting %s overlaps an existing period", apperrors.ErrConflict, m.StartDate.Format(time.DateOnly))
	}
	return nil
}

func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, u portsrepo.PeriodStatusUpdate) error {
	var query string
	switch u.To {
	case domain.PeriodClosed:
		query = `
			UPDATE accounting_periods
			SET status = $4, closed_by = $5, close_reason = $6, closed_at = $7, last_updated_at = $7, last_updated_by = $5
			WHERE tenant_id = $1 AND period_id::text = $2 AND status = $3;`
	default:
		query = `
			UPDATE accounting_periods
			SET status = $4, reopened_by = $5, reopen_reason = $6, reopened_at = $7, last_updated_at = $7, last_updated_by = $5
			WHERE tenant_id = $1 AND period_id::text = $2 AND status = $3;`
	}
	tag, err := r.db(ctx).Exec(ctx, query, u.TenantID, u.PeriodID, string(u.From), string(u.To), u.Actor, u.Reason, u.At)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period "+u.PeriodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: period %s is not %s", apperrors.ErrConflict, u.PeriodID, u.From)
	}
	return nil
}

// SaveOpeningBalances upserts snapshot rows in one batch.
func (r *PgxPeriodRepository) SaveOpeningBalances(ctx context.Context, balances []domain.OpeningBalance) error {
	if len(balances) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO opening_balances (period_id, tenant_id, account_id, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (period_id, account_id) DO UPDATE SET balance = EXCLUDED.balance, created_at = EXCLUDED.created_at;
	`
	for _, ob := range balances {
		m := mapping.ToModelOpeningBalance(ob)
		batch.Queue(query, m.PeriodID, m.TenantID, m.AccountID, m.Balance, m.CreatedAt)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translate(err, "failed to save opening balances")
	}
	return nil
}

func (r *PgxPeriodRepository) DeleteOpeningBalances(ctx context.Context, tenantID, periodID string) error {
	_, err := r.db(ctx).Exec(ctx, `DELETE FROM opening_balances WHERE tenant_id = $1 AND period_id::text = $2;`, tenantID, periodID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete opening balances of "+periodID, err)
	}
	return nil
}
