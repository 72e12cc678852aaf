// Package ppob is the reference bill-payment collaborator for the checkout saga.
package ppob

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
)

// Channel handles bill-payment purchases paid out of the PPOB deposit.
type Channel struct {
	repo portsrepo.PpobPurchaseRepository
}

// New creates the PPOB channel backed by repo.
func New(repo portsrepo.PpobPurchaseRepository) *Channel {
	return &Channel{repo: repo}
}

var _ portssvc.PpobChannel = (*Channel)(nil)

func validate(order domain.PpobOrder) error {
	if strings.TrimSpace(order.ProductCode) == "" || strings.TrimSpace(order.CustomerNo) == "" {
		return fmt.Errorf("%w: product code and customer number are required", apperrors.ErrValidation)
	}
	if !order.BasePrice.IsPositive() {
		return fmt.Errorf("%w: base price must be positive, got %s", apperrors.ErrValidation, order.BasePrice)
	}
	if order.AdminFee.IsNegative() {
		return fmt.Errorf("%w: admin fee cannot be negative, got %s", apperrors.ErrValidation, order.AdminFee)
	}
	return nil
}

// PrepareCheckout totals the purchase and checks the payment breakdown.
func (c *Channel) PrepareCheckout(ctx context.Context, tenantID string, order domain.PpobOrder) (*domain.CheckoutPlan, error) {
	if err := validate(order); err != nil {
		return nil, err
	}
	total := order.BasePrice.Add(order.AdminFee)
	if err := channels.ValidatePayments(order.Payments, total); err != nil {
		return nil, err
	}
	ref := order.ReferenceID
	if ref == "" {
		ref = "PPOB-" + strings.ToUpper(uuid.NewString()[:8])
	}
	return &domain.CheckoutPlan{ReferenceID: ref, TotalAmount: total, Payments: order.Payments}, nil
}

// Fulfill records the completed purchase. A second call for the same journal returns the first record.
func (c *Channel) Fulfill(ctx context.Context, tenantID, journalID string, order domain.PpobOrder) (*domain.OperationalRecord, error) {
	if journalID == "" {
		return nil, fmt.Errorf("%w: fulfillment needs the lock journal id", apperrors.ErrValidation)
	}
	if err := validate(order); err != nil {
		return nil, err
	}
	stored, err := c.repo.SavePpobPurchase(ctx, domain.PpobPurchase{
		OperationalRecord: domain.OperationalRecord{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			Channel:   domain.ChannelPpob,
			JournalID: journalID,
			CreatedAt: time.Now().UTC(),
		},
		ReferenceID: order.ReferenceID,
		ProductCode: order.ProductCode,
		CustomerNo:  order.CustomerNo,
		BasePrice:   order.BasePrice,
		AdminFee:    order.AdminFee,
	})
	if err != nil {
		return nil, err
	}
	rec := stored.OperationalRecord
	return &rec, nil
}

// ComputeSettlementLines uses the base price from the PPOB deposit and books the admin fee as revenue.
func (c *Channel) ComputeSettlementLines(ctx context.Context, tenantID, recordID string) ([]domain.SettlementLine, error) {
	p, err := c.repo.FindPpobPurchaseByID(ctx, tenantID, recordID)
	if err != nil {
		return nil, err
	}
	lines := []domain.SettlementLine{
		{Kind: domain.SettleDepositUsage, Amount: p.BasePrice, Description: "PPOB deposit used for " + p.ProductCode},
	}
	if p.AdminFee.IsPositive() {
		lines = append(lines, domain.SettlementLine{Kind: domain.SettlePpobFeeRevenue, Amount: p.AdminFee, Description: "PPOB admin fee"})
	}
	return lines, nil
}
