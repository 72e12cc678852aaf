package dto

import (
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeriodRequest opens the next accounting period. Dates are YYYY-MM-DD and inclusive.
type CreatePeriodRequest struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// PeriodActionRequest carries the audit reason of a close or reopen.
type PeriodActionRequest struct {
	Reason string `json:"reason" binding:"required,max=512"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID     string              `json:"periodID"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	Status       domain.PeriodStatus `json:"status"`
	ClosedBy     *string             `json:"closedBy,omitempty"`
	ClosedAt     *time.Time          `json:"closedAt,omitempty"`
	CloseReason  *string             `json:"closeReason,omitempty"`
	ReopenedBy   *string             `json:"reopenedBy,omitempty"`
	ReopenedAt   *time.Time          `json:"reopenedAt,omitempty"`
	ReopenReason *string             `json:"reopenReason,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		StartDate:    p.StartDate.Format(time.DateOnly),
		EndDate:      p.EndDate.Format(time.DateOnly),
		Status:       p.Status,
		ClosedBy:     p.ClosedBy,
		ClosedAt:     p.ClosedAt,
		CloseReason:  p.CloseReason,
		ReopenedBy:   p.ReopenedBy,
		ReopenedAt:   p.ReopenedAt,
		ReopenReason: p.ReopenReason,
		CreatedAt:    p.CreatedAt,
		CreatedBy:    p.CreatedBy,
	}
}

func ToListPeriodResponse(periods []domain.AccountingPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}

// OpeningBalanceResponse is one snapshot row of a period.
type OpeningBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}
