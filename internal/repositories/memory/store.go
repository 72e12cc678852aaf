// Package memory is an in-process implementation of the repository ports.
// It keeps the contracts the Postgres repositories give: a unit of work is
// all-or-nothing, idempotency keys and void references are unique, and status
// changes are compare-and-write.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
)

type txKey struct{}

type state struct {
	accounts      map[string]domain.Account // by id
	accountByCode map[string]string         // tenant|code -> id
	periods       map[string]domain.AccountingPeriod
	opening       map[string][]domain.OpeningBalance // by period id
	journals      map[string]domain.Journal
	txns          map[string]domain.MarketplaceTransaction
	txnByKey      map[string]string
	salesOrders   map[string]domain.SalesOrder
	salesByJrnl   map[string]string
	ppob          map[string]domain.PpobPurchase
	ppobByJrnl    map[string]string
}

func newState() state {
	return state{
		accounts:      map[string]domain.Account{},
		accountByCode: map[string]string{},
		periods:       map[string]domain.AccountingPeriod{},
		opening:       map[string][]domain.OpeningBalance{},
		journals:      map[string]domain.Journal{},
		txns:          map[string]domain.MarketplaceTransaction{},
		txnByKey:      map[string]string{},
		salesOrders:   map[string]domain.SalesOrder{},
		salesByJrnl:   map[string]string{},
		ppob:          map[string]domain.PpobPurchase{},
		ppobByJrnl:    map[string]string{},
	}
}

// clone copies every map. Stored values are replaced, never mutated in place,
// so sharing their slices between copies is safe.
func (st state) clone() state {
	return state{
		accounts:      maps.Clone(st.accounts),
		accountByCode: maps.Clone(st.accountByCode),
		periods:       maps.Clone(st.periods),
		opening:       maps.Clone(st.opening),
		journals:      maps.Clone(st.journals),
		txns:          maps.Clone(st.txns),
		txnByKey:      maps.Clone(st.txnByKey),
		salesOrders:   maps.Clone(st.salesOrders),
		salesByJrnl:   maps.Clone(st.salesByJrnl),
		ppob:          maps.Clone(st.ppob),
		ppobByJrnl:    maps.Clone(st.ppobByJrnl),
	}
}

// Store holds all ledger state behind one mutex. A unit of work holds the mutex
// for its whole duration, so units of work are serializable.
type Store struct {
	mu sync.Mutex
	st state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

var _ portsrepo.TxManager = (*Store)(nil)

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       s,
		AccountRepo:     s,
		PeriodRepo:      s,
		JournalRepo:     s,
		MarketplaceRepo: s,
		SalesOrderRepo:  s,
		PpobRepo:        s,
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock takes the store mutex unless ctx already runs inside this store's unit of work.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx runs fn as one unit of work. If fn fails, every change it made is discarded.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func codeKey(tenantID, code string) string { return tenantID + "|" + code }
