package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChannelType identifies the sales channel a transaction came from.
type ChannelType string

const (
	ChannelRetail ChannelType = "retail"
	ChannelPpob   ChannelType = "ppob"
)

// TransactionStatus is the saga state of a marketplace transaction.
type TransactionStatus string

const (
	TxInitiated     TransactionStatus = "initiated"
	TxJournalLocked TransactionStatus = "journal_locked"
	TxFulfilled     TransactionStatus = "fulfilled"
	TxSettled       TransactionStatus = "settled"
	TxReversed      TransactionStatus = "reversed"
)

// PendingEntityID marks a transaction whose fulfillment has not produced a record yet.
const PendingEntityID = "pending"

// IsTerminal reports whether no further transition is possible.
func (s TransactionStatus) IsTerminal() bool {
	return s == TxSettled || s == TxReversed
}

// MarketplaceTransaction is the saga row tying a checkout to its journals.
type MarketplaceTransaction struct {
	TransactionID       string            `json:"transactionID"`
	TenantID            string            `json:"tenantID"`
	Type                ChannelType       `json:"type"`
	Status              TransactionStatus `json:"status"`
	JournalID           *string           `json:"journalID,omitempty"`
	SettlementJournalID *string           `json:"settlementJournalID,omitempty"`
	ReversalJournalID   *string           `json:"reversalJournalID,omitempty"`
	ReferenceID         string            `json:"referenceID"`
	EntityID            string            `json:"entityID"`
	Amount              decimal.Decimal   `json:"amount"`
	IdempotencyKey      *string           `json:"idempotencyKey,omitempty"`
	CreatedBy           string            `json:"createdBy"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	FulfilledAt         *time.Time        `json:"fulfilledAt,omitempty"`
	SettledAt           *time.Time        `json:"settledAt,omitempty"`
	ReversedAt          *time.Time        `json:"reversedAt,omitempty"`
	ReversalReason      *string           `json:"reversalReason,omitempty"`
}

// IsPending reports whether fulfillment never recorded an operational entity.
func (t MarketplaceTransaction) IsPending() bool {
	return t.EntityID == "" || t.EntityID == PendingEntityID
}

// TransitionUpdate describes the fields a compare-and-write transition sets.
// Only non-nil fields are written.
type TransitionUpdate struct {
	From                []TransactionStatus
	To                  TransactionStatus
	JournalID           *string
	SettlementJournalID *string
	ReversalJournalID   *string
	EntityID            *string
	ReversalReason      *string
	At                  time.Time
}

// CheckoutPlan is what a channel collaborator computes before anything is persisted.
type CheckoutPlan struct {
	ReferenceID string          `json:"referenceID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Payments    []PaymentLine   `json:"payments"`
}

// OperationalRecord is the channel-side result of fulfillment.
type OperationalRecord struct {
	ID        string      `json:"id"`
	TenantID  string      `json:"tenantID"`
	Channel   ChannelType `json:"channel"`
	JournalID string      `json:"journalID"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CheckoutResult is returned to checkout callers.
type CheckoutResult struct {
	Transaction MarketplaceTransaction `json:"transaction"`
	Operational *OperationalRecord     `json:"operational,omitempty"`
}

// ReconcileAction is what the reconciler did with a stuck transaction.
type ReconcileAction string

const (
	ReconcileReversed ReconcileAction = "reversed"
	ReconcileSettled  ReconcileAction = "settled"
	ReconcileSkipped  ReconcileAction = "skipped"
	ReconcileFailed   ReconcileAction = "failed"
)

// ReconcileOutcome reports the handling of one stuck transaction.
type ReconcileOutcome struct {
	TransactionID  string            `json:"transactionID"`
	TenantID       string            `json:"tenantID"`
	PreviousStatus TransactionStatus `json:"previousStatus"`
	Action         ReconcileAction   `json:"action"`
	Error          string            `json:"error,omitempty"`
}
