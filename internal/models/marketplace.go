package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketplaceTransaction is a row of the marketplace_transactions table.
type MarketplaceTransaction struct {
	TransactionID       string          `db:"transaction_id"`
	TenantID            string          `db:"tenant_id"`
	Type                string          `db:"type"`
	Status              string          `db:"status"`
	JournalID           *string         `db:"journal_id"`
	SettlementJournalID *string         `db:"settlement_journal_id"`
	ReversalJournalID   *string         `db:"reversal_journal_id"`
	ReferenceID         string          `db:"reference_id"`
	EntityID            string          `db:"entity_id"`
	Amount              decimal.Decimal `db:"amount"`
	IdempotencyKey      *string         `db:"idempotency_key"`
	CreatedBy           string          `db:"created_by"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
	FulfilledAt         *time.Time      `db:"fulfilled_at"`
	SettledAt           *time.Time      `db:"settled_at"`
	ReversedAt          *time.Time      `db:"reversed_at"`
	ReversalReason      *string         `db:"reversal_reason"`
}
