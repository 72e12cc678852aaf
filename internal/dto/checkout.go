package dto

import (
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentLineRequest is one instrument's share of a checkout.
type PaymentLineRequest struct {
	Method    domain.PaymentMethod `json:"method" binding:"required,payment_method"`
	Amount    decimal.Decimal      `json:"amount"`
	MemberID  string               `json:"memberID" binding:"required_if=Method INTERNAL_BALANCE"`
	Reference string               `json:"reference"`
}

// RetailItemRequest is one order line.
type RetailItemRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Consignment bool            `json:"consignment"`
}

// RetailCheckoutRequest is a point-of-sale checkout.
type RetailCheckoutRequest struct {
	ReferenceID string               `json:"referenceID" binding:"omitempty,max=64"`
	Items       []RetailItemRequest  `json:"items" binding:"required,min=1,dive"`
	Discount    decimal.Decimal      `json:"discount"`
	TaxRate     decimal.Decimal      `json:"taxRate"`
	Payments    []PaymentLineRequest `json:"payments" binding:"required,min=1,dive"`
}

// PpobCheckoutRequest is a bill-payment checkout.
type PpobCheckoutRequest struct {
	ReferenceID string               `json:"referenceID" binding:"omitempty,max=64"`
	ProductCode string               `json:"productCode" binding:"required"`
	CustomerNo  string               `json:"customerNo" binding:"required"`
	BasePrice   decimal.Decimal      `json:"basePrice"`
	AdminFee    decimal.Decimal      `json:"adminFee"`
	Payments    []PaymentLineRequest `json:"payments" binding:"required,min=1,dive"`
}

func toPayments(in []PaymentLineRequest) []domain.PaymentLine {
	out := make([]domain.PaymentLine, len(in))
	for i, p := range in {
		out[i] = domain.PaymentLine{Method: p.Method, Amount: p.Amount, MemberID: p.MemberID, Reference: p.Reference}
	}
	return out
}

func (r RetailCheckoutRequest) ToOrder() domain.RetailOrder {
	items := make([]domain.RetailItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.RetailItem(it)
	}
	return domain.RetailOrder{
		ReferenceID: r.ReferenceID,
		Items:       items,
		Discount:    r.Discount,
		TaxRate:     r.TaxRate,
		Payments:    toPayments(r.Payments),
	}
}

func (r PpobCheckoutRequest) ToOrder() domain.PpobOrder {
	return domain.PpobOrder{
		ReferenceID: r.ReferenceID,
		ProductCode: r.ProductCode,
		CustomerNo:  r.CustomerNo,
		BasePrice:   r.BasePrice,
		AdminFee:    r.AdminFee,
		Payments:    toPayments(r.Payments),
	}
}

// ReverseTransactionRequest carries the reason recorded on the reversal.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=512"`
}

// ReconcileRequest triggers a scan. A nil threshold uses the configured default.
type ReconcileRequest struct {
	OlderThanMinutes *int `json:"olderThanMinutes" binding:"omitempty,min=0"`
}

// ReconcileResponse reports what a scan did.
type ReconcileResponse struct {
	Outcomes []domain.ReconcileOutcome `json:"outcomes"`
}
