package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus defines the status of a journal entry.
type JournalStatus string

const (
	JournalDraft  JournalStatus = "DRAFT"
	JournalPosted JournalStatus = "POSTED"
)

// ReferenceType tags the business event a journal was posted for.
type ReferenceType string

const (
	RefEscrowLock        ReferenceType = "ESCROW_LOCK"
	RefSettlement        ReferenceType = "SETTLEMENT"
	RefJournalVoid       ReferenceType = "JOURNAL_VOID"
	RefSavingsDeposit    ReferenceType = "SAVINGS_DEPOSIT"
	RefSavingsWithdrawal ReferenceType = "SAVINGS_WITHDRAWAL"
	RefLoanDisbursement  ReferenceType = "LOAN_DISBURSEMENT"
	RefLoanRepayment     ReferenceType = "LOAN_REPAYMENT"
	RefPurchase          ReferenceType = "PURCHASE"
	RefSalesReturn       ReferenceType = "SALES_RETURN"
	RefPurchaseReturn    ReferenceType = "PURCHASE_RETURN"
	RefStockAdjustment   ReferenceType = "STOCK_ADJUSTMENT"
	RefPaymentReceipt    ReferenceType = "PAYMENT_RECEIPT"
	RefManual            ReferenceType = "MANUAL"
)

// Journal represents a double-entry journal header together with its lines.
type Journal struct {
	JournalID       string        `json:"journalID"`
	TenantID        string        `json:"tenantID"`
	BusinessUnit    string        `json:"businessUnit,omitempty"`
	TransactionDate time.Time     `json:"transactionDate"`
	Description     string        `json:"description"`
	ReferenceID     string        `json:"referenceID,omitempty"`
	ReferenceType   ReferenceType `json:"referenceType"`
	Status          JournalStatus `json:"status"`
	Lines           []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is a single debit or credit against one account.
// Exactly one of Debit and Credit is positive.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	EntityType  string          `json:"entityType,omitempty"`
	EntityID    string          `json:"entityID,omitempty"`
}

// TotalDebit sums the debit side of the journal.
func (j Journal) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of the journal.
func (j Journal) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// IntentLine is a proposed line addressed by account code.
type IntentLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
	EntityType  string
	EntityID    string
}

// IntentInput carries everything needed to build a journal intent.
type IntentInput struct {
	BusinessUnit    string
	TransactionDate time.Time
	Description     string
	ReferenceID     string
	ReferenceType   ReferenceType
	Lines           []IntentLine
}

// JournalIntent is a validated, resolved, not-yet-persisted journal.
// It is only produced by the journal engine.
type JournalIntent struct {
	Journal Journal
}

// ListJournalsParams controls journal listing.
type ListJournalsParams struct {
	Limit     int
	NextToken *string
}

// ListJournalsResult is one page of journals.
type ListJournalsResult struct {
	Journals  []Journal `json:"journals"`
	NextToken *string   `json:"nextToken,omitempty"`
}

// MovementFilter narrows a posted-movement aggregation.
// Lines dated within [From, To] are included; a nil From means from genesis.
type MovementFilter struct {
	From       *time.Time
	To         time.Time
	AccountIDs []string
}

// AccountMovement is the posted debit and credit total of one account.
type AccountMovement struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}
