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
	"github.com/SscSPs/marketplace_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const journalColumns = `journal_id, tenant_id, business_unit, transaction_date, description, reference_id, reference_type, status,
	created_at, created_by, last_updated_at, last_updated_by`

const lineSelect = `
	SELECT l.line_id, l.journal_id, l.line_no, l.account_id, a.code AS account_code,
	       l.debit, l.credit, l.description, l.entity_type, l.entity_id
	FROM journal_lines l
	JOIN accounts a ON a.account_id = l.account_id`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournal saves the header and its lines. Both go through the context's transaction
// when there is one, otherwise through a transaction of their own.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	return r.WithinTx(ctx, func(ctx context.Context) error {
		return r.saveJournal(ctx, journal)
	})
}

func (r *PgxJournalRepository) saveJournal(ctx context.Context, journal domain.Journal) error {
	db := r.db(ctx)

	// 1. Every line must reference an account of the same tenant.
	accountIDs := make([]string, 0, len(journal.Lines))
	seen := map[string]bool{}
	for _, l := range journal.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			accountIDs = append(accountIDs, l.AccountID)
		}
	}
	var known int
	err := db.QueryRow(ctx, `SELECT count(*) FROM accounts WHERE tenant_id = $1 AND account_id::text = ANY($2);`,
		journal.TenantID, accountIDs).Scan(&known)
	if err != nil {
		return apperrors.NewAppError(500, "failed to verify journal accounts", err)
	}
	if known != len(accountIDs) {
		return apperrors.NewAppError(500, "journal line references unknown account", apperrors.ErrValidation)
	}

	// 2. Insert the header. A conflict on the primary key or on the single-void index inserts nothing.
	m := mapping.ToModelJournal(journal)
	headerQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT DO NOTHING;
	`
	tag, err := db.Exec(ctx, headerQuery,
		m.JournalID,
		m.TenantID,
		m.BusinessUnit,
		m.TransactionDate,
		m.Description,
		m.ReferenceID,
		m.ReferenceType,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translate(err, "failed to insert journal "+m.JournalID)
	}
	if tag.RowsAffected() == 0 {
		if journal.ReferenceType == domain.RefJournalVoid {
			return fmt.Errorf("%w: journal %s is already voided", apperrors.ErrDuplicate, journal.ReferenceID)
		}
		return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, journal.JournalID)
	}

	// 3. Insert the lines in one batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, line_no, account_id, debit, credit, description, entity_type, entity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for i, l := range journal.Lines {
		ml := mapping.ToModelJournalLine(l, i+1)
		batch.Queue(lineQuery,
			ml.LineID,
			m.JournalID,
			ml.LineNo,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.EntityType,
			ml.EntityID,
		)
	}
	br := db.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translate(err, "failed to insert lines of journal "+m.JournalID)
	}
	return nil
}

// UpdateJournalStatus is a compare-and-write on status.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, tenantID, journalID string, from, to domain.JournalStatus, actor string, at time.Time) error {
	query := `
		UPDATE journals SET status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND journal_id::text = $2 AND status = $3;
	`
	tag, err := r.db(ctx).Exec(ctx, query, tenantID, journalID, string(from), string(to), at, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+journalID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.findHeader(ctx, `tenant_id = $1 AND journal_id::text = $2`, tenantID, journalID); err != nil {
		return err
	}
	return fmt.Errorf("%w: journal %s is not %s", apperrors.ErrConflict, journalID, from)
}

func (r *PgxJournalRepository) findHeader(ctx context.Context, where string, args ...any) (*models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE ` + where + ` ORDER BY created_at LIMIT 1;`
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal not found")
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal", err)
	}
	return &m, nil
}

// linesFor loads the lines of the given journals keyed by journal id, in line order.
func (r *PgxJournalRepository) linesFor(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	query := lineSelect + ` WHERE l.journal_id::text = ANY($1) ORDER BY l.journal_id, l.line_no;`
	rows, err := r.db(ctx).Query(ctx, query, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal lines", err)
	}
	out := make(map[string][]domain.JournalLine, len(journalIDs))
	for _, m := range ms {
		out[m.JournalID] = append(out[m.JournalID], mapping.ToDomainJournalLine(m))
	}
	return out, nil
}

func (r *PgxJournalRepository) withLines(ctx context.Context, m *models.Journal) (*domain.Journal, error) {
	lines, err := r.linesFor(ctx, []string{m.JournalID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainJournal(*m)
	d.Lines = lines[m.JournalID]
	return &d, nil
}

// FindJournalByID retrieves a journal with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	m, err := r.findHeader(ctx, `tenant_id = $1 AND journal_id::text = $2`, tenantID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, err
	}
	return r.withLines(ctx, m)
}

// FindJournalByReference returns the oldest journal tagged with the reference.
func (r *PgxJournalRepository) FindJournalByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, referenceID string) (*domain.Journal, error) {
	m, err := r.findHeader(ctx, `tenant_id = $1 AND reference_type = $2 AND reference_id = $3`, tenantID, string(refType), referenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no %s journal for %s", apperrors.ErrNotFound, refType, referenceID)
		}
		return nil, err
	}
	return r.withLines(ctx, m)
}

// ListJournals retrieves a page of journals, newest first, using keyset pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := []any{tenantID}
	where := `tenant_id = $1`
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		where += ` AND (transaction_date, created_at, journal_id) < ($2::date, $3, $4::uuid)`
		args = append(args, c.Date, c.CreatedAt, c.ID)
	}
	query := fmt.Sprintf(`SELECT %s FROM journals WHERE %s
		ORDER BY transaction_date DESC, created_at DESC, journal_id DESC LIMIT %d;`, journalColumns, where, limit+1)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journals", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan journals", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := mapping.ToDomainJournal(ms[len(ms)-1])
		token := pagination.EncodeToken(pagination.Cursor{Date: last.TransactionDate, CreatedAt: last.CreatedAt, ID: last.JournalID})
		next = &token
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.JournalID
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	out := make([]domain.Journal, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainJournal(m)
		out[i].Lines = lines[m.JournalID]
	}
	return out, next, nil
}

// CountDraftsInRange counts DRAFT journals dated within [start, end].
func (r *PgxJournalRepository) CountDraftsInRange(ctx context.Context, tenantID string, start, end time.Time) (int, error) {
	query := `
		SELECT count(*) FROM journals
		WHERE tenant_id = $1 AND status = $2 AND transaction_date BETWEEN $3::date AND $4::date;
	`
	var n int
	if err := r.db(ctx).QueryRow(ctx, query, tenantID, string(domain.JournalDraft), start, end).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count draft journals", err)
	}
	return n, nil
}

// SumPostedMovements totals POSTED lines per account.
func (r *PgxJournalRepository) SumPostedMovements(ctx context.Context, tenantID string, filter domain.MovementFilter) (map[string]domain.AccountMovement, error) {
	query := `
		SELECT l.account_id::text, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.tenant_id = $1 AND j.status = $2 AND j.transaction_date <= $3::date
		  AND ($4::date IS NULL OR j.transaction_date >= $4::date)
		  AND (cardinality($5::text[]) = 0 OR l.account_id::text = ANY($5))
		GROUP BY l.account_id;
	`
	accountIDs := filter.AccountIDs
	if accountIDs == nil {
		accountIDs = []string{}
	}
	rows, err := r.db(ctx).Query(ctx, query, tenantID, string(domain.JournalPosted), filter.To, filter.From, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum posted movements", err)
	}
	defer rows.Close()

	out := map[string]domain.AccountMovement{}
	for rows.Next() {
		var m domain.AccountMovement
		var debit, credit decimal.Decimal
		if err := rows.Scan(&m.AccountID, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement", err)
		}
		m.Debit, m.Credit = debit, credit
		out[m.AccountID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read movements", err)
	}
	return out, nil
}
