package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/marketplace_ledger/internal/models"
	"github.com/SscSPs/marketplace_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	salesOrderColumns   = `sales_order_id, tenant_id, journal_id, reference_id, items, subtotal, discount, tax, total, created_at`
	ppobPurchaseColumns = `purchase_id, tenant_id, journal_id, reference_id, product_code, customer_no, base_price, admin_fee, created_at`
)

// PgxOperationalRepository stores the channel records created on fulfillment.
type PgxOperationalRepository struct {
	BaseRepository
}

func newPgxOperationalRepository(pool *pgxpool.Pool) *PgxOperationalRepository {
	return &PgxOperationalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SalesOrderRepository   = (*PgxOperationalRepository)(nil)
	_ portsrepo.PpobPurchaseRepository = (*PgxOperationalRepository)(nil)
)

func collectOne[T any](rows pgx.Rows, what string) (*T, error) {
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
		}
		return nil, apperrors.NewAppError(500, "failed to scan "+what, err)
	}
	return &m, nil
}

// SaveSalesOrder inserts the order; a retried fulfillment of the same journal gets the first order back.
func (r *PgxOperationalRepository) SaveSalesOrder(ctx context.Context, order domain.SalesOrder) (*domain.SalesOrder, error) {
	m := mapping.ToModelSalesOrder(order)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO sales_orders (`+salesOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (journal_id) DO NOTHING;`,
		m.SalesOrderID, m.TenantID, m.JournalID, m.ReferenceID, m.Items,
		m.Subtotal, m.Discount, m.Tax, m.Total, m.CreatedAt,
	)
	if err != nil {
		return nil, translate(err, "failed to insert sales order "+m.SalesOrderID)
	}

	rows, err := r.db(ctx).Query(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE journal_id::text = $1;`, m.JournalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read sales order", err)
	}
	saved, err := collectOne[models.SalesOrder](rows, "sales order for journal "+m.JournalID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainSalesOrder(*saved)
	return &d, nil
}

func (r *PgxOperationalRepository) FindSalesOrderByID(ctx context.Context, tenantID, id string) (*domain.SalesOrder, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders
		WHERE tenant_id = $1 AND sales_order_id::text = $2;`, tenantID, id)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sales order", err)
	}
	m, err := collectOne[models.SalesOrder](rows, "sales order "+id)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainSalesOrder(*m)
	return &d, nil
}

// SavePpobPurchase inserts the purchase; a retried fulfillment of the same journal gets the first purchase back.
func (r *PgxOperationalRepository) SavePpobPurchase(ctx context.Context, purchase domain.PpobPurchase) (*domain.PpobPurchase, error) {
	m := mapping.ToModelPpobPurchase(purchase)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO ppob_purchases (`+ppobPurchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (journal_id) DO NOTHING;`,
		m.PurchaseID, m.TenantID, m.JournalID, m.ReferenceID, m.ProductCode,
		m.CustomerNo, m.BasePrice, m.AdminFee, m.CreatedAt,
	)
	if err != nil {
		return nil, translate(err, "failed to insert ppob purchase "+m.PurchaseID)
	}

	rows, err := r.db(ctx).Query(ctx, `SELECT `+ppobPurchaseColumns+` FROM ppob_purchases WHERE journal_id::text = $1;`, m.JournalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read ppob purchase", err)
	}
	saved, err := collectOne[models.PpobPurchase](rows, "ppob purchase for journal "+m.JournalID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainPpobPurchase(*saved)
	return &d, nil
}

func (r *PgxOperationalRepository) FindPpobPurchaseByID(ctx context.Context, tenantID, id string) (*domain.PpobPurchase, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+ppobPurchaseColumns+` FROM ppob_purchases
		WHERE tenant_id = $1 AND purchase_id::text = $2;`, tenantID, id)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ppob purchase", err)
	}
	m, err := collectOne[models.PpobPurchase](rows, "ppob purchase "+id)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainPpobPurchase(*m)
	return &d, nil
}
