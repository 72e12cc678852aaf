package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/core/services"
	"github.com/SscSPs/marketplace_ledger/internal/platform/config"
	"github.com/SscSPs/marketplace_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	testTenant = "tenant-a"
	testActor  = "user-1"
)

// testClock is a settable clock shared by every service of a ledger.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ledger is a fully wired set of services over an in-memory store.
type ledger struct {
	store *memory.Store
	clock *testClock
	svc   *portssvc.ServiceContainer
}

func newLedger(mode domain.PeriodMode, now time.Time) *ledger {
	store := memory.NewStore()
	clock := newTestClock(now)
	cfg := &config.Config{PeriodMode: string(mode), DuplicateResumeAttempts: 8}
	return &ledger{
		store: store,
		clock: clock,
		svc:   services.NewServiceContainer(cfg, store.Provider(), services.WithClock(clock.Now)),
	}
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func day(y int, m time.Month, dd int) time.Time { return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC) }

// countJournals returns every journal of the tenant regardless of page size.
func (l *ledger) countJournals(ctx context.Context, tenantID string) int {
	var total int
	var token *string
	for {
		page, next, err := l.store.ListJournals(ctx, tenantID, 100, token)
		if err != nil {
			panic(err)
		}
		total += len(page)
		if next == nil {
			return total
		}
		token = next
	}
}

func (l *ledger) balance(ctx context.Context, code string) decimal.Decimal {
	bal, err := l.svc.Journal.AccountBalance(ctx, testTenant, code, l.clock.Now())
	if err != nil {
		panic(err)
	}
	return bal
}

func cashOrder(amount string) domain.RetailOrder {
	return domain.RetailOrder{
		Items: []domain.RetailItem{
			{SKU: "SKU-1", Quantity: 1, UnitPrice: d(amount), UnitCost: decimal.Zero},
		},
		Discount: decimal.Zero,
		TaxRate:  decimal.Zero,
		Payments: []domain.PaymentLine{{Method: domain.PaymentCash, Amount: d(amount)}},
	}
}

// --- Mock RetailChannel ---
type MockRetailChannel struct {
	mock.Mock
}

var _ portssvc.RetailChannel = (*MockRetailChannel)(nil)

func (m *MockRetailChannel) PrepareCheckout(ctx context.Context, tenantID string, order domain.RetailOrder) (*domain.CheckoutPlan, error) {
	args := m.Called(ctx, tenantID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutPlan), args.Error(1)
}

func (m *MockRetailChannel) Fulfill(ctx context.Context, tenantID, journalID string, order domain.RetailOrder) (*domain.OperationalRecord, error) {
	args := m.Called(ctx, tenantID, journalID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationalRecord), args.Error(1)
}

func (m *MockRetailChannel) ComputeSettlementLines(ctx context.Context, tenantID, recordID string) ([]domain.SettlementLine, error) {
	args := m.Called(ctx, tenantID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SettlementLine), args.Error(1)
}
