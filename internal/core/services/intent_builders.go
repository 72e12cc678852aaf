package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// paymentAccountCode routes a payment method to the account its money moves through.
func paymentAccountCode(method domain.PaymentMethod) (string, error) {
	code, ok := domain.PaymentAccountCodes[method]
	if !ok {
		return "", fmt.Errorf("%w: no account routed for payment method %q", apperrors.ErrAccountConfigurationMissing, method)
	}
	return code, nil
}

func requirePositive(what string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive, got %s", apperrors.ErrLedgerIntegrityViolation, what, amount)
	}
	return nil
}

func debit(code string, amount decimal.Decimal, desc string) domain.IntentLine {
	return domain.IntentLine{AccountCode: code, Debit: amount, Credit: decimal.Zero, Description: desc}
}

func credit(code string, amount decimal.Decimal, desc string) domain.IntentLine {
	return domain.IntentLine{AccountCode: code, Debit: decimal.Zero, Credit: amount, Description: desc}
}

func withEntity(l domain.IntentLine, entityType, entityID string) domain.IntentLine {
	if entityID != "" {
		l.EntityType, l.EntityID = entityType, entityID
	}
	return l
}

func (s *journalService) build(ctx context.Context, tenantID, actor string, meta domain.EventMeta, ref domain.ReferenceType, fallbackDesc string, lines ...domain.IntentLine) (*domain.JournalIntent, error) {
	desc := meta.Description
	if desc == "" {
		desc = fallbackDesc
	}
	return s.CreateIntent(ctx, tenantID, actor, domain.IntentInput{
		BusinessUnit:    meta.BusinessUnit,
		TransactionDate: meta.TransactionDate,
		Description:     desc,
		ReferenceID:     meta.ReferenceID,
		ReferenceType:   ref,
		Lines:           lines,
	})
}

func (s *journalService) BuildSavingsDeposit(ctx context.Context, tenantID, actor string, ev domain.SavingsDeposit) (*domain.JournalIntent, error) {
	if err := requirePositive("deposit amount", ev.Amount); err != nil {
		return nil, err
	}
	if ev.Method == domain.PaymentInternalBalance {
		return nil, fmt.Errorf("%w: savings cannot be deposited from internal balance", apperrors.ErrValidation)
	}
	cashCode, err := paymentAccountCode(ev.Method)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefSavingsDeposit, "Savings deposit",
		debit(cashCode, ev.Amount, "Deposit received"),
		withEntity(credit(domain.CodeMemberSavings, ev.Amount, "Member savings"), "member", ev.MemberID),
	)
}

func (s *journalService) BuildSavingsWithdrawal(ctx context.Context, tenantID, actor string, ev domain.SavingsWithdrawal) (*domain.JournalIntent, error) {
	if err := requirePositive("withdrawal amount", ev.Amount); err != nil {
		return nil, err
	}
	if ev.Amount.GreaterThan(ev.AvailableBalance) {
		return nil, fmt.Errorf("%w: member %s requested %s but has %s", apperrors.ErrInsufficientBalance, ev.MemberID, ev.Amount, ev.AvailableBalance)
	}
	if ev.Method == domain.PaymentInternalBalance {
		return nil, fmt.Errorf("%w: savings cannot be withdrawn to internal balance", apperrors.ErrValidation)
	}
	cashCode, err := paymentAccountCode(ev.Method)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefSavingsWithdrawal, "Savings withdrawal",
		withEntity(debit(domain.CodeMemberSavings, ev.Amount, "Member savings"), "member", ev.MemberID),
		credit(cashCode, ev.Amount, "Withdrawal paid"),
	)
}

func (s *journalService) BuildLoanDisbursement(ctx context.Context, tenantID, actor string, ev domain.LoanDisbursement) (*domain.JournalIntent, error) {
	if err := requirePositive("loan principal", ev.Principal); err != nil {
		return nil, err
	}
	cashCode, err := paymentAccountCode(ev.Method)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefLoanDisbursement, "Loan disbursement",
		withEntity(debit(domain.CodeLoanReceivable, ev.Principal, "Loan principal"), "borrower", ev.BorrowerID),
		credit(cashCode, ev.Principal, "Loan paid out"),
	)
}

func (s *journalService) BuildLoanRepayment(ctx context.Context, tenantID, actor string, ev domain.LoanRepayment) (*domain.JournalIntent, error) {
	if err := requirePositive("loan principal", ev.Principal); err != nil {
		return nil, err
	}
	if ev.Interest.IsNegative() {
		return nil, fmt.Errorf("%w: interest cannot be negative, got %s", apperrors.ErrLedgerIntegrityViolation, ev.Interest)
	}
	cashCode, err := paymentAccountCode(ev.Method)
	if err != nil {
		return nil, err
	}
	lines := []domain.IntentLine{
		debit(cashCode, ev.Principal.Add(ev.Interest), "Repayment received"),
		withEntity(credit(domain.CodeLoanReceivable, ev.Principal, "Loan principal"), "borrower", ev.BorrowerID),
	}
	if ev.Interest.IsPositive() {
		lines = append(lines, credit(domain.CodeFinancingIncome, ev.Interest, "Financing income"))
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefLoanRepayment, "Loan repayment", lines...)
}

func (s *journalService) BuildEscrowLock(ctx context.Context, tenantID, actor string, ev domain.EscrowLock) (*domain.JournalIntent, error) {
	if len(ev.Payments) == 0 {
		return nil, fmt.Errorf("%w: escrow lock needs at least one payment", apperrors.ErrLedgerIntegrityViolation)
	}
	lines := make([]domain.IntentLine, 0, len(ev.Payments)+1)
	for i, p := range ev.Payments {
		if err := requirePositive(fmt.Sprintf("payment %d (%s)", i, p.Method), p.Amount); err != nil {
			return nil, err
		}
		code, err := paymentAccountCode(p.Method)
		if err != nil {
			return nil, err
		}
		l := debit(code, p.Amount, "Payment "+string(p.Method))
		if p.Method == domain.PaymentInternalBalance {
			l = withEntity(l, "member", p.MemberID)
		}
		lines = append(lines, l)
	}
	lines = append(lines, credit(domain.CodeEscrowLiability, domain.SumPayments(ev.Payments), "Funds held in escrow"))
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefEscrowLock, "Escrow lock", lines...)
}

var (
	retailSettlementKinds = map[domain.SettlementLineKind]bool{
		domain.SettleRevenue:            true,
		domain.SettleTaxPayable:         true,
		domain.SettleConsignmentPayable: true,
		domain.SettleCostOfGoods:        true,
	}
	ppobSettlementKinds = map[domain.SettlementLineKind]bool{
		domain.SettleDepositUsage:   true,
		domain.SettlePpobFeeRevenue: true,
		domain.SettleTaxPayable:     true,
	}
)

func (s *journalService) BuildRetailSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement) (*domain.JournalIntent, error) {
	return s.buildSettlement(ctx, tenantID, actor, ev, retailSettlementKinds, "Retail settlement")
}

func (s *journalService) BuildPpobSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement) (*domain.JournalIntent, error) {
	return s.buildSettlement(ctx, tenantID, actor, ev, ppobSettlementKinds, "PPOB settlement")
}

// buildSettlement debits escrow by the locked amount and credits each clearing line.
// Cost-of-goods lines add their own balanced expense/inventory pair.
func (s *journalService) buildSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement, allowed map[domain.SettlementLineKind]bool, fallbackDesc string) (*domain.JournalIntent, error) {
	if err := requirePositive("escrow amount", ev.EscrowAmount); err != nil {
		return nil, err
	}

	lines := []domain.IntentLine{debit(domain.CodeEscrowLiability, ev.EscrowAmount, "Escrow released")}
	cleared := decimal.Zero
	for _, sl := range ev.Lines {
		if !allowed[sl.Kind] {
			return nil, fmt.Errorf("%w: settlement line kind %q is not allowed for %s", apperrors.ErrValidation, sl.Kind, ev.Channel)
		}
		if sl.Amount.IsZero() {
			continue
		}
		if sl.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: settlement line %s has negative amount %s", apperrors.ErrLedgerIntegrityViolation, sl.Kind, sl.Amount)
		}
		if sl.Kind == domain.SettleCostOfGoods {
			lines = append(lines,
				debit(domain.CodeCostOfGoodsSold, sl.Amount, "Cost of goods sold"),
				credit(domain.CodeInventory, sl.Amount, "Inventory relieved"),
			)
			continue
		}
		desc := sl.Description
		if desc == "" {
			desc = string(sl.Kind)
		}
		lines = append(lines, credit(domain.SettlementAccountCodes[sl.Kind], sl.Amount, desc))
		cleared = cleared.Add(sl.Amount)
	}

	if cleared.Sub(ev.EscrowAmount).Abs().GreaterThan(accounting.BalanceTolerance) {
		return nil, fmt.Errorf("%w: settlement lines clear %s but escrow holds %s", apperrors.ErrLedgerIntegrityViolation, cleared, ev.EscrowAmount)
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefSettlement, fallbackDesc, lines...)
}

func (s *journalService) BuildPurchase(ctx context.Context, tenantID, actor string, ev domain.Purchase) (*domain.JournalIntent, error) {
	if err := requirePositive("purchase amount", ev.Amount); err != nil {
		return nil, err
	}
	creditLine := withEntity(credit(domain.CodeAccountsPayable, ev.Amount, "Owed to supplier"), "supplier", ev.SupplierID)
	if !ev.OnCredit {
		code, err := paymentAccountCode(ev.Method)
		if err != nil {
			return nil, err
		}
		creditLine = credit(code, ev.Amount, "Purchase paid")
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefPurchase, "Inventory purchase",
		debit(domain.CodeInventory, ev.Amount, "Inventory received"),
		creditLine,
	)
}

func (s *journalService) BuildSalesReturn(ctx context.Context, tenantID, actor string, ev domain.SalesReturn) (*domain.JournalIntent, error) {
	if err := requirePositive("refund amount", ev.Amount); err != nil {
		return nil, err
	}
	if ev.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: returned cost cannot be negative, got %s", apperrors.ErrLedgerIntegrityViolation, ev.Cost)
	}
	code, err := paymentAccountCode(ev.Method)
	if err != nil {
		return nil, err
	}
	lines := []domain.IntentLine{
		debit(domain.CodeSalesReturns, ev.Amount, "Sales returned"),
		credit(code, ev.Amount, "Refund paid"),
	}
	if ev.Cost.IsPositive() {
		lines = append(lines,
			debit(domain.CodeInventory, ev.Cost, "Goods restocked"),
			credit(domain.CodeCostOfGoodsSold, ev.Cost, "Cost of goods reversed"),
		)
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefSalesReturn, "Sales return", lines...)
}

func (s *journalService) BuildPurchaseReturn(ctx context.Context, tenantID, actor string, ev domain.PurchaseReturn) (*domain.JournalIntent, error) {
	if err := requirePositive("purchase return amount", ev.Amount); err != nil {
		return nil, err
	}
	debitLine := withEntity(debit(domain.CodeAccountsPayable, ev.Amount, "Supplier balance reduced"), "supplier", ev.SupplierID)
	if !ev.OnCredit {
		code, err := paymentAccountCode(ev.Method)
		if err != nil {
			return nil, err
		}
		debitLine = debit(code, ev.Amount, "Refund received")
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefPurchaseReturn, "Purchase return",
		debitLine,
		credit(domain.CodeInventory, ev.Amount, "Goods returned to supplier"),
	)
}

func (s *journalService) BuildStockAdjustment(ctx context.Context, tenantID, actor string, ev domain.StockAdjustment) (*domain.JournalIntent, error) {
	if ev.Amount.IsZero() {
		return nil, fmt.Errorf("%w: stock adjustment amount must not be zero", apperrors.ErrLedgerIntegrityViolation)
	}
	amount := ev.Amount.Abs()
	if ev.Amount.IsPositive() {
		return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefStockAdjustment, "Stock adjustment gain",
			debit(domain.CodeInventory, amount, "Stock found"),
			credit(domain.CodeInventoryAdjust, amount, "Inventory adjustment"),
		)
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefStockAdjustment, "Stock adjustment loss",
		debit(domain.CodeInventoryAdjust, amount, "Inventory adjustment"),
		credit(domain.CodeInventory, amount, "Stock written off"),
	)
}

func (s *journalService) BuildPaymentReceipt(ctx context.Context, tenantID, actor string, ev domain.PaymentReceipt) (*domain.JournalIntent, error) {
	if err := requirePositive("receipt amount", ev.Amount); err != nil {
		return nil, err
	}
	if ev.CreditAccountCode == "" {
		return nil, fmt.Errorf("%w: payment receipt needs a credit account", apperrors.ErrValidation)
	}
	code, err := paymentAccountCode(ev.Method)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, tenantID, actor, ev.EventMeta, domain.RefPaymentReceipt, "Payment receipt",
		debit(code, ev.Amount, "Payment received"),
		credit(ev.CreditAccountCode, ev.Amount, "Payment applied"),
	)
}
