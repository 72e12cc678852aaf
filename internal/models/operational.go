package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderItem is one element of sales_orders.items (JSONB).
type SalesOrderItem struct {
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Consignment bool            `json:"consignment"`
}

// SalesOrder is a row of the sales_orders table.
type SalesOrder struct {
	SalesOrderID string           `db:"sales_order_id"`
	TenantID     string           `db:"tenant_id"`
	JournalID    string           `db:"journal_id"`
	ReferenceID  string           `db:"reference_id"`
	Items        []SalesOrderItem `db:"items"`
	Subtotal     decimal.Decimal  `db:"subtotal"`
	Discount     decimal.Decimal  `db:"discount"`
	Tax          decimal.Decimal  `db:"tax"`
	Total        decimal.Decimal  `db:"total"`
	CreatedAt    time.Time        `db:"created_at"`
}

// PpobPurchase is a row of the ppob_purchases table.
type PpobPurchase struct {
	PurchaseID  string          `db:"purchase_id"`
	TenantID    string          `db:"tenant_id"`
	JournalID   string          `db:"journal_id"`
	ReferenceID string          `db:"reference_id"`
	ProductCode string          `db:"product_code"`
	CustomerNo  string          `db:"customer_no"`
	BasePrice   decimal.Decimal `db:"base_price"`
	AdminFee    decimal.Decimal `db:"admin_fee"`
	CreatedAt   time.Time       `db:"created_at"`
}
