package accounting

import (
	"fmt"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference still treated as balanced.
var BalanceTolerance = decimal.RequireFromString("0.01")

// SignedAmount returns the effect of a debit/credit pair on an account's balance.
// DEBIT-normal accounts grow with debits; CREDIT-normal accounts grow with credits.
func SignedAmount(debit, credit decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.NormalDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// ValidateIntentLines checks the double-entry rules on proposed lines:
// each line has exactly one positive side, both sides are present,
// the debit total is positive and the sides agree within BalanceTolerance.
func ValidateIntentLines(lines []domain.IntentLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrLedgerIntegrityViolation)
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	var debits, credits int
	for i, l := range lines {
		if l.AccountCode == "" {
			return fmt.Errorf("%w: line %d has no account code", apperrors.ErrLedgerIntegrityViolation, i)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d (%s) has a negative amount (debit %s, credit %s)",
				apperrors.ErrLedgerIntegrityViolation, i, l.AccountCode, l.Debit, l.Credit)
		}
		switch {
		case l.Debit.IsPositive() && l.Credit.IsZero():
			debits++
		case l.Credit.IsPositive() && l.Debit.IsZero():
			credits++
		default:
			return fmt.Errorf("%w: line %d (%s) must carry exactly one positive side (debit %s, credit %s)",
				apperrors.ErrLedgerIntegrityViolation, i, l.AccountCode, l.Debit, l.Credit)
		}
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if debits == 0 || credits == 0 {
		return fmt.Errorf("%w: journal needs at least one debit and one credit", apperrors.ErrLedgerIntegrityViolation)
	}
	if !totalDebit.IsPositive() {
		return fmt.Errorf("%w: total debit must be positive, got %s", apperrors.ErrLedgerIntegrityViolation, totalDebit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits %s do not equal credits %s", apperrors.ErrLedgerIntegrityViolation, totalDebit, totalCredit)
	}
	return nil
}

// SwapLines returns a copy of lines with debit and credit exchanged.
func SwapLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = l
		out[i].Debit, out[i].Credit = l.Credit, l.Debit
	}
	return out
}
