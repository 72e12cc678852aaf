package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventMeta is the header information shared by all business-event builders.
type EventMeta struct {
	TransactionDate time.Time
	ReferenceID     string
	Description     string
	BusinessUnit    string
}

// SavingsDeposit credits a member's savings from a payment instrument.
type SavingsDeposit struct {
	EventMeta
	MemberID string
	Amount   decimal.Decimal
	Method   PaymentMethod
}

// SavingsWithdrawal pays out a member's savings. AvailableBalance is the member's
// current savings balance as known to the caller.
type SavingsWithdrawal struct {
	EventMeta
	MemberID         string
	Amount           decimal.Decimal
	AvailableBalance decimal.Decimal
	Method           PaymentMethod
}

// LoanDisbursement pays out a loan principal.
type LoanDisbursement struct {
	EventMeta
	BorrowerID string
	Principal  decimal.Decimal
	Method     PaymentMethod
}

// LoanRepayment receives principal and financing income.
type LoanRepayment struct {
	EventMeta
	BorrowerID string
	Principal  decimal.Decimal
	Interest   decimal.Decimal
	Method     PaymentMethod
}

// EscrowLock moves checkout funds from the payment instruments into escrow.
type EscrowLock struct {
	EventMeta
	Payments []PaymentLine
}

// Settlement releases a locked escrow amount into the channel's settlement lines.
type Settlement struct {
	EventMeta
	Channel      ChannelType
	EscrowAmount decimal.Decimal
	Lines        []SettlementLine
}

// Purchase books inventory bought from a supplier, on credit or paid.
type Purchase struct {
	EventMeta
	SupplierID string
	Amount     decimal.Decimal
	OnCredit   bool
	Method     PaymentMethod // Ignored when OnCredit
}

// SalesReturn refunds a customer and, when Cost is positive, restocks the goods.
type SalesReturn struct {
	EventMeta
	Amount decimal.Decimal
	Cost   decimal.Decimal
	Method PaymentMethod
}

// PurchaseReturn sends goods back to a supplier.
type PurchaseReturn struct {
	EventMeta
	SupplierID string
	Amount     decimal.Decimal
	OnCredit   bool
	Method     PaymentMethod // Ignored when OnCredit
}

// StockAdjustment books a stock-take difference. A positive Amount is a gain, negative a loss.
type StockAdjustment struct {
	EventMeta
	Amount decimal.Decimal
}

// PaymentReceipt receives money against an arbitrary credit account.
type PaymentReceipt struct {
	EventMeta
	Amount            decimal.Decimal
	Method            PaymentMethod
	CreditAccountCode string
}
