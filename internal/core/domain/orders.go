package domain

import "github.com/shopspring/decimal"

// RetailItem is one line of a point-of-sale order.
type RetailItem struct {
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Consignment bool            `json:"consignment"` // Goods owned by a consignor
}

// RetailOrder is the order data the retail channel checks out.
type RetailOrder struct {
	ReferenceID string          `json:"referenceID,omitempty"`
	Items       []RetailItem    `json:"items"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"` // Fraction, e.g. 0.11
	Payments    []PaymentLine   `json:"payments"`
}

// PpobOrder is a bill-payment purchase.
type PpobOrder struct {
	ReferenceID string          `json:"referenceID,omitempty"`
	ProductCode string          `json:"productCode"`
	CustomerNo  string          `json:"customerNo"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	AdminFee    decimal.Decimal `json:"adminFee"`
	Payments    []PaymentLine   `json:"payments"`
}

// SalesOrder is the retail operational record persisted on fulfillment.
type SalesOrder struct {
	OperationalRecord
	ReferenceID string          `json:"referenceID"`
	Items       []RetailItem    `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// PpobPurchase is the bill-payment operational record persisted on fulfillment.
type PpobPurchase struct {
	OperationalRecord
	ReferenceID string          `json:"referenceID"`
	ProductCode string          `json:"productCode"`
	CustomerNo  string          `json:"customerNo"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	AdminFee    decimal.Decimal `json:"adminFee"`
}
