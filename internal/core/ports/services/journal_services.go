package services

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	GetJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, tenantID string, params domain.ListJournalsParams) (*domain.ListJournalsResult, error)

	// AccountBalance returns the posted balance of an account as of the end of asOf, signed by its normal balance.
	AccountBalance(ctx context.Context, tenantID, code string, asOf time.Time) (decimal.Decimal, error)
}

// JournalWriterSvc defines the intent and posting layers of the journal engine.
type JournalWriterSvc interface {
	// CreateIntent validates and resolves lines into a not-yet-persisted journal.
	CreateIntent(ctx context.Context, tenantID, actor string, input domain.IntentInput) (*domain.JournalIntent, error)

	// PostJournal persists a POSTED journal atomically and returns its id.
	// It joins a transaction already carried by ctx.
	PostJournal(ctx context.Context, intent *domain.JournalIntent) (string, error)

	// SaveDraft persists the intent as a DRAFT that does not count towards balances.
	SaveDraft(ctx context.Context, intent *domain.JournalIntent) (string, error)

	// PostDraft flips a DRAFT journal to POSTED after re-checking its period.
	PostDraft(ctx context.Context, tenantID, journalID, actor string) (*domain.Journal, error)

	// VoidJournal posts the swapped-lines compensation of a posted journal and returns it.
	// Voiding the same journal again returns the existing void.
	VoidJournal(ctx context.Context, tenantID, journalID, actor, reason string) (*domain.Journal, error)
}

// JournalBuilderSvc assembles intents for business events.
// Every builder resolves its accounts before returning, so a missing account
// fails with apperrors.ErrChartOfAccountsMisconfigured before anything is written.
type JournalBuilderSvc interface {
	BuildSavingsDeposit(ctx context.Context, tenantID, actor string, ev domain.SavingsDeposit) (*domain.JournalIntent, error)
	BuildSavingsWithdrawal(ctx context.Context, tenantID, actor string, ev domain.SavingsWithdrawal) (*domain.JournalIntent, error)
	BuildLoanDisbursement(ctx context.Context, tenantID, actor string, ev domain.LoanDisbursement) (*domain.JournalIntent, error)
	BuildLoanRepayment(ctx context.Context, tenantID, actor string, ev domain.LoanRepayment) (*domain.JournalIntent, error)
	BuildEscrowLock(ctx context.Context, tenantID, actor string, ev domain.EscrowLock) (*domain.JournalIntent, error)
	BuildRetailSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement) (*domain.JournalIntent, error)
	BuildPpobSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement) (*domain.JournalIntent, error)
	BuildPurchase(ctx context.Context, tenantID, actor string, ev domain.Purchase) (*domain.JournalIntent, error)
	BuildSalesReturn(ctx context.Context, tenantID, actor string, ev domain.SalesReturn) (*domain.JournalIntent, error)
	BuildPurchaseReturn(ctx context.Context, tenantID, actor string, ev domain.PurchaseReturn) (*domain.JournalIntent, error)
	BuildStockAdjustment(ctx context.Context, tenantID, actor string, ev domain.StockAdjustment) (*domain.JournalIntent, error)
	BuildPaymentReceipt(ctx context.Context, tenantID, actor string, ev domain.PaymentReceipt) (*domain.JournalIntent, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalBuilderSvc
}
