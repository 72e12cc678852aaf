package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingPeriod is a row of the accounting_periods table.
type AccountingPeriod struct {
	PeriodID     string     `db:"period_id"`
	TenantID     string     `db:"tenant_id"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	Status       string     `db:"status"`
	ClosedBy     *string    `db:"closed_by"`
	ClosedAt     *time.Time `db:"closed_at"`
	CloseReason  *string    `db:"close_reason"`
	ReopenedBy   *string    `db:"reopened_by"`
	ReopenedAt   *time.Time `db:"reopened_at"`
	ReopenReason *string    `db:"reopen_reason"`
	AuditFields
}

// OpeningBalance is a row of the opening_balances table.
type OpeningBalance struct {
	PeriodID  string          `db:"period_id"`
	TenantID  string          `db:"tenant_id"`
	AccountID string          `db:"account_id"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}
