package dto

import (
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// VoidJournalRequest carries the audit reason of a void.
type VoidJournalRequest struct {
	Reason string `json:"reason" binding:"required,max=512"`
}

// JournalLineResponse is one debit or credit line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	EntityType  string          `json:"entityType,omitempty"`
	EntityID    string          `json:"entityID,omitempty"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID       string                `json:"journalID"`
	BusinessUnit    string                `json:"businessUnit,omitempty"`
	TransactionDate string                `json:"transactionDate"`
	Description     string                `json:"description"`
	ReferenceID     string                `json:"referenceID,omitempty"`
	ReferenceType   domain.ReferenceType  `json:"referenceType"`
	Status          domain.JournalStatus  `json:"status"`
	TotalDebit      decimal.Decimal       `json:"totalDebit"`
	TotalCredit     decimal.Decimal       `json:"totalCredit"`
	Lines           []JournalLineResponse `json:"lines"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ListJournalsResponse is one page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

func ToJournalResponse(j *domain.Journal) JournalResponse {
	lines := make([]JournalLineResponse, len(j.Lines))
	for i, l := range j.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
		}
	}
	return JournalResponse{
		JournalID:       j.JournalID,
		BusinessUnit:    j.BusinessUnit,
		TransactionDate: j.TransactionDate.Format(time.DateOnly),
		Description:     j.Description,
		ReferenceID:     j.ReferenceID,
		ReferenceType:   j.ReferenceType,
		Status:          j.Status,
		TotalDebit:      j.TotalDebit(),
		TotalCredit:     j.TotalCredit(),
		Lines:           lines,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
}

func ToListJournalsResponse(res *domain.ListJournalsResult) ListJournalsResponse {
	out := ListJournalsResponse{Journals: make([]JournalResponse, len(res.Journals)), NextToken: res.NextToken}
	for i := range res.Journals {
		out.Journals[i] = ToJournalResponse(&res.Journals[i])
	}
	return out
}
