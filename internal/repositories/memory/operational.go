package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
)

var (
	_ portsrepo.SalesOrderRepository   = (*Store)(nil)
	_ portsrepo.PpobPurchaseRepository = (*Store)(nil)
)

func (s *Store) SaveSalesOrder(ctx context.Context, order domain.SalesOrder) (*domain.SalesOrder, error) {
	defer s.lock(ctx)()
	if id, ok := s.st.salesByJrnl[order.JournalID]; ok {
		existing := s.st.salesOrders[id]
		return &existing, nil
	}
	order.Items = slices.Clone(order.Items)
	s.st.salesOrders[order.ID] = order
	s.st.salesByJrnl[order.JournalID] = order.ID
	return &order, nil
}

func (s *Store) FindSalesOrderByID(ctx context.Context, tenantID, id string) (*domain.SalesOrder, error) {
	defer s.lock(ctx)()
	o, ok := s.st.salesOrders[id]
	if !ok || o.TenantID != tenantID {
		return nil, fmt.Errorf("%w: sales order %s", apperrors.ErrNotFound, id)
	}
	return &o, nil
}

func (s *Store) SavePpobPurchase(ctx context.Context, purchase domain.PpobPurchase) (*domain.PpobPurchase, error) {
	defer s.lock(ctx)()
	if id, ok := s.st.ppobByJrnl[purchase.JournalID]; ok {
		existing := s.st.ppob[id]
		return &existing, nil
	}
	s.st.ppob[purchase.ID] = purchase
	s.st.ppobByJrnl[purchase.JournalID] = purchase.ID
	return &purchase, nil
}

func (s *Store) FindPpobPurchaseByID(ctx context.Context, tenantID, id string) (*domain.PpobPurchase, error) {
	defer s.lock(ctx)()
	p, ok := s.st.ppob[id]
	if !ok || p.TenantID != tenantID {
		return nil, fmt.Errorf("%w: ppob purchase %s", apperrors.ErrNotFound, id)
	}
	return &p, nil
}
