package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ResolveAccountID(ctx context.Context, tenantID, code string) (string, error) {
	args := m.Called(ctx, tenantID, code)
	return args.String(0), args.Error(1)
}
func (m *MockAccountService) ResolveAccounts(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccount(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) EnsureAccount(ctx context.Context, tenantID string, spec domain.AccountSpec, actor string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, spec, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) SeedDefaultChart(ctx context.Context, tenantID, actor string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, tenantID, code, actor string) error {
	args := m.Called(ctx, tenantID, code, actor)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) journal(args mock.Arguments) (*domain.Journal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) intent(args mock.Arguments) (*domain.JournalIntent, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalIntent), args.Error(1)
}

func (m *MockJournalService) GetJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, tenantID, journalID))
}
func (m *MockJournalService) ListJournals(ctx context.Context, tenantID string, params domain.ListJournalsParams) (*domain.ListJournalsResult, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListJournalsResult), args.Error(1)
}
func (m *MockJournalService) AccountBalance(ctx context.Context, tenantID, code string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, code, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockJournalService) CreateIntent(ctx context.Context, tenantID, actor string, input domain.IntentInput) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, input))
}
func (m *MockJournalService) PostJournal(ctx context.Context, intent *domain.JournalIntent) (string, error) {
	args := m.Called(ctx, intent)
	return args.String(0), args.Error(1)
}
func (m *MockJournalService) SaveDraft(ctx context.Context, intent *domain.JournalIntent) (string, error) {
	args := m.Called(ctx, intent)
	return args.String(0), args.Error(1)
}
func (m *MockJournalService) PostDraft(ctx context.Context, tenantID, journalID, actor string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, tenantID, journalID, actor))
}
func (m *MockJournalService) VoidJournal(ctx context.Context, tenantID, journalID, actor, reason string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, tenantID, journalID, actor, reason))
}
func (m *MockJournalService) BuildSavingsDeposit(ctx context.Context, tenantID, actor string, ev domain.SavingsDeposit) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildSavingsWithdrawal(ctx context.Context, tenantID, actor string, ev domain.SavingsWithdrawal) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildLoanDisbursement(ctx context.Context, tenantID, actor string, ev domain.LoanDisbursement) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildLoanRepayment(ctx context.Context, tenantID, actor string, ev domain.LoanRepayment) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildEscrowLock(ctx context.Context, tenantID, actor string, ev domain.EscrowLock) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildRetailSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildPpobSettlement(ctx context.Context, tenantID, actor string, ev domain.Settlement) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildPurchase(ctx context.Context, tenantID, actor string, ev domain.Purchase) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildSalesReturn(ctx context.Context, tenantID, actor string, ev domain.SalesReturn) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildPurchaseReturn(ctx context.Context, tenantID, actor string, ev domain.PurchaseReturn) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildStockAdjustment(ctx context.Context, tenantID, actor string, ev domain.StockAdjustment) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}
func (m *MockJournalService) BuildPaymentReceipt(ctx context.Context, tenantID, actor string, ev domain.PaymentReceipt) (*domain.JournalIntent, error) {
	return m.intent(m.Called(ctx, tenantID, actor, ev))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) period(args mock.Arguments) (*domain.AccountingPeriod, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodService) Mode() domain.PeriodMode {
	return m.Called().Get(0).(domain.PeriodMode)
}
func (m *MockPeriodService) PeriodFor(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, date))
}
func (m *MockPeriodService) AssertOpen(ctx context.Context, tenantID string, date time.Time) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, date))
}
func (m *MockPeriodService) CreatePeriod(ctx context.Context, tenantID string, start, end time.Time, actor string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, start, end, actor))
}
func (m *MockPeriodService) ClosePeriod(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actor, reason))
}
func (m *MockPeriodService) ReopenPeriod(ctx context.Context, tenantID, periodID, actor, reason string) (*domain.AccountingPeriod, error) {
	return m.period(m.Called(ctx, tenantID, periodID, actor, reason))
}
func (m *MockPeriodService) ListPeriods(ctx context.Context, tenantID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}
func (m *MockPeriodService) OpeningBalances(ctx context.Context, tenantID, periodID string) ([]domain.OpeningBalance, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningBalance), args.Error(1)
}

var _ portssvc.PeriodSvcFacade = (*MockPeriodService)(nil)

// --- Mock MarketplaceService ---
type MockMarketplaceService struct {
	mock.Mock
}

func (m *MockMarketplaceService) txn(args mock.Arguments) (*domain.MarketplaceTransaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketplaceTransaction), args.Error(1)
}
func (m *MockMarketplaceService) result(args mock.Arguments) (*domain.CheckoutResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutResult), args.Error(1)
}

func (m *MockMarketplaceService) CreateTransaction(ctx context.Context, tenantID string, channel domain.ChannelType, amount decimal.Decimal, actor, referenceID string, idempotencyKey *string) (*domain.MarketplaceTransaction, error) {
	return m.txn(m.Called(ctx, tenantID, channel, amount, actor, referenceID, idempotencyKey))
}
func (m *MockMarketplaceService) LockJournal(ctx context.Context, transactionID, actor, referenceID string, payments []domain.PaymentLine) (*domain.MarketplaceTransaction, error) {
	return m.txn(m.Called(ctx, transactionID, actor, referenceID, payments))
}
func (m *MockMarketplaceService) MarkFulfilled(ctx context.Context, transactionID string, record domain.OperationalRecord) (*domain.MarketplaceTransaction, error) {
	return m.txn(m.Called(ctx, transactionID, record))
}
func (m *MockMarketplaceService) SettleTransaction(ctx context.Context, transactionID, actor string) (*domain.MarketplaceTransaction, error) {
	return m.txn(m.Called(ctx, transactionID, actor))
}
func (m *MockMarketplaceService) ReverseTransaction(ctx context.Context, transactionID, actor, reason string) (*domain.MarketplaceTransaction, error) {
	return m.txn(m.Called(ctx, transactionID, actor, reason))
}
func (m *MockMarketplaceService) GetTransaction(ctx context.Context, tenantID, transactionID string) (*domain.MarketplaceTransaction, error) {
	return m.txn(m.Called(ctx, tenantID, transactionID))
}
func (m *MockMarketplaceService) CheckoutRetail(ctx context.Context, tenantID, actor string, order domain.RetailOrder, idempotencyKey *string) (*domain.CheckoutResult, error) {
	return m.result(m.Called(ctx, tenantID, actor, order, idempotencyKey))
}
func (m *MockMarketplaceService) CheckoutPpob(ctx context.Context, tenantID, actor string, order domain.PpobOrder, idempotencyKey *string) (*domain.CheckoutResult, error) {
	return m.result(m.Called(ctx, tenantID, actor, order, idempotencyKey))
}

var _ portssvc.MarketplaceSvcFacade = (*MockMarketplaceService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) ListStuck(ctx context.Context, olderThanMinutes int) ([]domain.MarketplaceTransaction, error) {
	args := m.Called(ctx, olderThanMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketplaceTransaction), args.Error(1)
}
func (m *MockReconciliationService) Reconcile(ctx context.Context, olderThanMinutes int) ([]domain.ReconcileOutcome, error) {
	args := m.Called(ctx, olderThanMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReconcileOutcome), args.Error(1)
}

var _ portssvc.ReconciliationSvc = (*MockReconciliationService)(nil)
