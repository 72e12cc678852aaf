// Package retail is the reference point-of-sale collaborator for the checkout saga.
package retail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/channels"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Channel prices retail orders, records them on fulfillment and splits them for settlement.
type Channel struct {
	repo portsrepo.SalesOrderRepository
}

// New creates the retail channel backed by repo.
func New(repo portsrepo.SalesOrderRepository) *Channel {
	return &Channel{repo: repo}
}

var _ portssvc.RetailChannel = (*Channel)(nil)

// breakdown is the priced view of an order.
type breakdown struct {
	own, consigned, cost decimal.Decimal
	discount, tax        decimal.Decimal
}

func (b breakdown) subtotal() decimal.Decimal { return b.own.Add(b.consigned) }

func (b breakdown) total() decimal.Decimal {
	return b.subtotal().Sub(b.discount).Add(b.tax)
}

func price(items []domain.RetailItem, discount, taxRate decimal.Decimal) (breakdown, error) {
	if len(items) == 0 {
		return breakdown{}, fmt.Errorf("%w: order has no items", apperrors.ErrValidation)
	}
	b := breakdown{own: decimal.Zero, consigned: decimal.Zero, cost: decimal.Zero}
	for i, it := range items {
		if strings.TrimSpace(it.SKU) == "" {
			return breakdown{}, fmt.Errorf("%w: item %d has no sku", apperrors.ErrValidation, i)
		}
		if it.Quantity <= 0 {
			return breakdown{}, fmt.Errorf("%w: item %s quantity must be positive", apperrors.ErrValidation, it.SKU)
		}
		if it.UnitPrice.IsNegative() || it.UnitCost.IsNegative() {
			return breakdown{}, fmt.Errorf("%w: item %s has a negative price or cost", apperrors.ErrValidation, it.SKU)
		}
		qty := decimal.NewFromInt(it.Quantity)
		line := it.UnitPrice.Mul(qty)
		if it.Consignment {
			b.consigned = b.consigned.Add(line)
			continue
		}
		b.own = b.own.Add(line)
		b.cost = b.cost.Add(it.UnitCost.Mul(qty))
	}
	if discount.IsNegative() || discount.GreaterThan(b.own) {
		return breakdown{}, fmt.Errorf("%w: discount %s must be between 0 and the own-goods subtotal %s", apperrors.ErrValidation, discount, b.own)
	}
	if taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return breakdown{}, fmt.Errorf("%w: tax rate %s must be a fraction in [0, 1)", apperrors.ErrValidation, taxRate)
	}
	b.discount = discount
	b.tax = b.subtotal().Sub(discount).Mul(taxRate).Round(2)
	if !b.total().IsPositive() {
		return breakdown{}, fmt.Errorf("%w: order total must be positive", apperrors.ErrValidation)
	}
	return b, nil
}

// PrepareCheckout prices the order and checks the payment breakdown. Nothing is persisted.
func (c *Channel) PrepareCheckout(ctx context.Context, tenantID string, order domain.RetailOrder) (*domain.CheckoutPlan, error) {
	b, err := price(order.Items, order.Discount, order.TaxRate)
	if err != nil {
		return nil, err
	}
	if err := channels.ValidatePayments(order.Payments, b.total()); err != nil {
		return nil, err
	}
	ref := order.ReferenceID
	if ref == "" {
		ref = "POS-" + strings.ToUpper(uuid.NewString()[:8])
	}
	return &domain.CheckoutPlan{ReferenceID: ref, TotalAmount: b.total(), Payments: order.Payments}, nil
}

// Fulfill records the sale. A second call for the same journal returns the first record.
func (c *Channel) Fulfill(ctx context.Context, tenantID, journalID string, order domain.RetailOrder) (*domain.OperationalRecord, error) {
	if journalID == "" {
		return nil, fmt.Errorf("%w: fulfillment needs the lock journal id", apperrors.ErrValidation)
	}
	b, err := price(order.Items, order.Discount, order.TaxRate)
	if err != nil {
		return nil, err
	}
	so := domain.SalesOrder{
		OperationalRecord: domain.OperationalRecord{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			Channel:   domain.ChannelRetail,
			JournalID: journalID,
			CreatedAt: time.Now().UTC(),
		},
		ReferenceID: order.ReferenceID,
		Items:       order.Items,
		Subtotal:    b.subtotal(),
		Discount:    b.discount,
		Tax:         b.tax,
		Total:       b.total(),
	}
	stored, err := c.repo.SaveSalesOrder(ctx, so)
	if err != nil {
		return nil, err
	}
	rec := stored.OperationalRecord
	return &rec, nil
}

// ComputeSettlementLines splits a recorded sale into revenue, consignment payable,
// tax payable and the cost of own goods sold.
func (c *Channel) ComputeSettlementLines(ctx context.Context, tenantID, recordID string) ([]domain.SettlementLine, error) {
	so, err := c.repo.FindSalesOrderByID(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	b := breakdown{own: decimal.Zero, consigned: decimal.Zero, cost: decimal.Zero, discount: so.Discount, tax: so.Tax}
	for _, it := range so.Items {
		qty := decimal.NewFromInt(it.Quantity)
		if it.Consignment {
			b.consigned = b.consigned.Add(it.UnitPrice.Mul(qty))
			continue
		}
		b.own = b.own.Add(it.UnitPrice.Mul(qty))
		b.cost = b.cost.Add(it.UnitCost.Mul(qty))
	}

	var lines []domain.SettlementLine
	add := func(kind domain.SettlementLineKind, amount decimal.Decimal, desc string) {
		if amount.IsPositive() {
			lines = append(lines, domain.SettlementLine{Kind: kind, Amount: amount, Description: desc})
		}
	}
	add(domain.SettleRevenue, b.own.Sub(b.discount), "Sales revenue")
	add(domain.SettleConsignmentPayable, b.consigned, "Owed to consignors")
	add(domain.SettleTaxPayable, b.tax, "Output tax")
	add(domain.SettleCostOfGoods, b.cost, "Cost of goods sold")
	return lines, nil
}
