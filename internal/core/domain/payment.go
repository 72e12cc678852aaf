package domain

import "github.com/shopspring/decimal"

// PaymentMethod is the closed set of instruments a checkout can be paid with.
type PaymentMethod string

const (
	PaymentCash            PaymentMethod = "CASH"
	PaymentBankTransfer    PaymentMethod = "BANK_TRANSFER"
	PaymentQRIS            PaymentMethod = "QRIS"
	PaymentInternalBalance PaymentMethod = "INTERNAL_BALANCE"
)

// PaymentMethods lists every supported method.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentBankTransfer, PaymentQRIS, PaymentInternalBalance}

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	for _, pm := range PaymentMethods {
		if m == pm {
			return true
		}
	}
	return false
}

// PaymentLine is one instrument's share of a checkout.
type PaymentLine struct {
	Method    PaymentMethod   `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	MemberID  string          `json:"memberID,omitempty"` // Required for INTERNAL_BALANCE
	Reference string          `json:"reference,omitempty"`
}

// SumPayments totals the payment breakdown.
func SumPayments(payments []PaymentLine) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
