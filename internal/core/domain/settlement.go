package domain

import "github.com/shopspring/decimal"

// SettlementLineKind is the closed set of settlement line purposes.
type SettlementLineKind string

const (
	SettleRevenue            SettlementLineKind = "REVENUE"
	SettlePpobFeeRevenue     SettlementLineKind = "PPOB_FEE_REVENUE"
	SettleTaxPayable         SettlementLineKind = "TAX_PAYABLE"
	SettleConsignmentPayable SettlementLineKind = "CONSIGNMENT_PAYABLE"
	SettleDepositUsage       SettlementLineKind = "DEPOSIT_USAGE"
	SettleCostOfGoods        SettlementLineKind = "COST_OF_GOODS"
)

// ClearsEscrow reports whether lines of this kind are funded from escrow.
// COST_OF_GOODS is a self-balancing pair and does not touch escrow.
func (k SettlementLineKind) ClearsEscrow() bool {
	switch k {
	case SettleRevenue, SettlePpobFeeRevenue, SettleTaxPayable, SettleConsignmentPayable, SettleDepositUsage:
		return true
	}
	return false
}

// Valid reports whether k is a known kind.
func (k SettlementLineKind) Valid() bool {
	return k.ClearsEscrow() || k == SettleCostOfGoods
}

// SettlementLine is one component of revenue recognition computed by a channel.
type SettlementLine struct {
	Kind        SettlementLineKind `json:"kind"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description,omitempty"`
}

// EscrowTotal sums the lines that clear escrow.
func EscrowTotal(lines []SettlementLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Kind.ClearsEscrow() {
			total = total.Add(l.Amount)
		}
	}
	return total
}
