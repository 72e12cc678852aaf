package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// Journal is a row of the journals table.
type Journal struct {
	JournalID       string        `db:"journal_id"`
	TenantID        string        `db:"tenant_id"`
	BusinessUnit    *string       `db:"business_unit"` // Nullable
	TransactionDate time.Time     `db:"transaction_date"`
	Description     string        `db:"description"`
	ReferenceID     *string       `db:"reference_id"` // Nullable
	ReferenceType   string        `db:"reference_type"`
	Status          JournalStatus `db:"status"`
	AuditFields
}

// JournalLine is a row of the journal_lines table. Exactly one of Debit and Credit is positive.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	JournalID   string          `db:"journal_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"account_code"` // Joined from accounts
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description *string         `db:"description"`
	EntityType  *string         `db:"entity_type"`
	EntityID    *string         `db:"entity_id"`
}
