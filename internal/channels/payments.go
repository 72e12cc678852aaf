// Package channels holds what the reference sales-channel collaborators share.
package channels

import (
	"fmt"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ValidatePayments checks the payment breakdown of a checkout against its total.
func ValidatePayments(payments []domain.PaymentLine, total decimal.Decimal) error {
	if len(payments) == 0 {
		return fmt.Errorf("%w: at least one payment is required", apperrors.ErrValidation)
	}
	for i, p := range payments {
		if !p.Method.Valid() {
			return fmt.Errorf("%w: payment %d has unsupported method %q", apperrors.ErrAccountConfigurationMissing, i, p.Method)
		}
		if !p.Amount.IsPositive() {
			return fmt.Errorf("%w: payment %d amount must be positive, got %s", apperrors.ErrValidation, i, p.Amount)
		}
		if p.Method == domain.PaymentInternalBalance && p.MemberID == "" {
			return fmt.Errorf("%w: payment %d uses internal balance without a member", apperrors.ErrValidation, i)
		}
	}
	paid := domain.SumPayments(payments)
	if paid.Sub(total).Abs().GreaterThan(accounting.BalanceTolerance) {
		return fmt.Errorf("%w: payments total %s but the order total is %s", apperrors.ErrValidation, paid, total)
	}
	return nil
}
