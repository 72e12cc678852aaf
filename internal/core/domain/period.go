package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus indicates whether an accounting period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// PeriodMode selects how the period guard reacts to a date with no period.
type PeriodMode string

const (
	// PeriodModeStrict fails postings dated outside every period.
	PeriodModeStrict PeriodMode = "strict"
	// PeriodModeLenient auto-creates an open period spanning the calendar year of the date.
	PeriodModeLenient PeriodMode = "lenient"
)

// AccountingPeriod is a contiguous, non-overlapping date window for a tenant.
// StartDate and EndDate are inclusive calendar days in UTC.
type AccountingPeriod struct {
	PeriodID     string       `json:"periodID"`
	TenantID     string       `json:"tenantID"`
	StartDate    time.Time    `json:"startDate"`
	EndDate      time.Time    `json:"endDate"`
	Status       PeriodStatus `json:"status"`
	ClosedBy     *string      `json:"closedBy,omitempty"`
	ClosedAt     *time.Time   `json:"closedAt,omitempty"`
	CloseReason  *string      `json:"closeReason,omitempty"`
	ReopenedBy   *string      `json:"reopenedBy,omitempty"`
	ReopenedAt   *time.Time   `json:"reopenedAt,omitempty"`
	ReopenReason *string      `json:"reopenReason,omitempty"`
	AuditFields
}

// Contains reports whether the calendar day of t falls inside the period.
func (p AccountingPeriod) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// SuccessorStart is the first day of the period that must follow this one.
func (p AccountingPeriod) SuccessorStart() time.Time {
	return p.EndDate.AddDate(0, 0, 1)
}

// OpeningBalance is a snapshot of an account's balance at the start of a period,
// signed by the account's normal balance.
type OpeningBalance struct {
	PeriodID  string          `json:"periodID"`
	TenantID  string          `json:"tenantID"`
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
