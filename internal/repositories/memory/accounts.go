package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
)

var _ portsrepo.AccountRepositoryFacade = (*Store)(nil)

func (s *Store) FindAccountByCode(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	defer s.lock(ctx)()
	id, ok := s.st.accountByCode[codeKey(tenantID, code)]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
	}
	acc := s.st.accounts[id]
	return &acc, nil
}

func (s *Store) FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	defer s.lock(ctx)()
	out := make(map[string]domain.Account, len(codes))
	for _, c := range codes {
		if id, ok := s.st.accountByCode[codeKey(tenantID, c)]; ok {
			out[c] = s.st.accounts[id]
		}
	}
	return out, nil
}

func (s *Store) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	defer s.lock(ctx)()
	var out []domain.Account
	for _, acc := range s.st.accounts {
		if acc.TenantID == tenantID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) UpsertAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	defer s.lock(ctx)()
	key := codeKey(account.TenantID, account.Code)
	if id, ok := s.st.accountByCode[key]; ok {
		existing := s.st.accounts[id]
		existing.Name = account.Name
		existing.ParentCode = account.ParentCode
		existing.IsActive = true
		existing.LastUpdatedAt = account.LastUpdatedAt
		existing.LastUpdatedBy = account.LastUpdatedBy
		s.st.accounts[id] = existing
		return &existing, nil
	}
	s.st.accounts[account.AccountID] = account
	s.st.accountByCode[key] = account.AccountID
	return &account, nil
}

func (s *Store) DeactivateAccount(ctx context.Context, tenantID, code, actor string, at time.Time) error {
	defer s.lock(ctx)()
	id, ok := s.st.accountByCode[codeKey(tenantID, code)]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
	}
	acc := s.st.accounts[id]
	acc.IsActive = false
	acc.LastUpdatedAt = at
	acc.LastUpdatedBy = actor
	s.st.accounts[id] = acc
	return nil
}
