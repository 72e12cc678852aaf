package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/marketplace_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var _ portsrepo.JournalRepositoryFacade = (*Store)(nil)

func (s *Store) SaveJournal(ctx context.Context, journal domain.Journal) error {
	defer s.lock(ctx)()
	if _, exists := s.st.journals[journal.JournalID]; exists {
		return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, journal.JournalID)
	}
	for _, l := range journal.Lines {
		acc, ok := s.st.accounts[l.AccountID]
		if !ok || acc.TenantID != journal.TenantID {
			return apperrors.NewAppError(500, "journal line references unknown account "+l.AccountID, apperrors.ErrValidation)
		}
	}
	if journal.ReferenceType == domain.RefJournalVoid {
		for _, j := range s.st.journals {
			if j.TenantID == journal.TenantID && j.ReferenceType == domain.RefJournalVoid && j.ReferenceID == journal.ReferenceID {
				return fmt.Errorf("%w: journal %s is already voided by %s", apperrors.ErrDuplicate, journal.ReferenceID, j.JournalID)
			}
		}
	}
	journal.Lines = slices.Clone(journal.Lines)
	s.st.journals[journal.JournalID] = journal
	return nil
}

func (s *Store) UpdateJournalStatus(ctx context.Context, tenantID, journalID string, from, to domain.JournalStatus, actor string, at time.Time) error {
	defer s.lock(ctx)()
	j, ok := s.st.journals[journalID]
	if !ok || j.TenantID != tenantID {
		return fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}
	if j.Status != from {
		return fmt.Errorf("%w: journal %s is %s, expected %s", apperrors.ErrConflict, journalID, j.Status, from)
	}
	j.Status = to
	j.LastUpdatedAt, j.LastUpdatedBy = at, actor
	s.st.journals[journalID] = j
	return nil
}

func (s *Store) FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	defer s.lock(ctx)()
	j, ok := s.st.journals[journalID]
	if !ok || j.TenantID != tenantID {
		return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}
	j.Lines = slices.Clone(j.Lines)
	return &j, nil
}

func (s *Store) FindJournalByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, referenceID string) (*domain.Journal, error) {
	defer s.lock(ctx)()
	for _, j := range s.st.journals {
		if j.TenantID == tenantID && j.ReferenceType == refType && j.ReferenceID == referenceID {
			j.Lines = slices.Clone(j.Lines)
			return &j, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s journal for %s", apperrors.ErrNotFound, refType, referenceID)
}

func (s *Store) ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	defer s.lock(ctx)()
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	var all []domain.Journal
	for _, j := range s.st.journals {
		if j.TenantID != tenantID {
			continue
		}
		if cursor != nil && !cursor.After(j.TransactionDate, j.CreatedAt, j.JournalID) {
			continue
		}
		all = append(all, j)
	}
	sort.Slice(all, func(a, b int) bool {
		ja, jb := all[a], all[b]
		if !ja.TransactionDate.Equal(jb.TransactionDate) {
			return ja.TransactionDate.After(jb.TransactionDate)
		}
		if !ja.CreatedAt.Equal(jb.CreatedAt) {
			return ja.CreatedAt.After(jb.CreatedAt)
		}
		return ja.JournalID > jb.JournalID
	})

	var next *string
	if len(all) > limit {
		all = all[:limit]
		last := all[len(all)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.TransactionDate, CreatedAt: last.CreatedAt, ID: last.JournalID})
		next = &token
	}
	for i := range all {
		all[i].Lines = slices.Clone(all[i].Lines)
	}
	return all, next, nil
}

func (s *Store) CountDraftsInRange(ctx context.Context, tenantID string, start, end time.Time) (int, error) {
	defer s.lock(ctx)()
	n := 0
	for _, j := range s.st.journals {
		if j.TenantID == tenantID && j.Status == domain.JournalDraft &&
			!j.TransactionDate.Before(start) && !j.TransactionDate.After(end) {
			n++
		}
	}
	return n, nil
}

func (s *Store) SumPostedMovements(ctx context.Context, tenantID string, filter domain.MovementFilter) (map[string]domain.AccountMovement, error) {
	defer s.lock(ctx)()
	out := map[string]domain.AccountMovement{}
	for _, j := range s.st.journals {
		if j.TenantID != tenantID || j.Status != domain.JournalPosted || j.TransactionDate.After(filter.To) {
			continue
		}
		if filter.From != nil && j.TransactionDate.Before(*filter.From) {
			continue
		}
		for _, l := range j.Lines {
			if len(filter.AccountIDs) > 0 && !slices.Contains(filter.AccountIDs, l.AccountID) {
				continue
			}
			m, ok := out[l.AccountID]
			if !ok {
				m = domain.AccountMovement{AccountID: l.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
			}
			m.Debit = m.Debit.Add(l.Debit)
			m.Credit = m.Credit.Add(l.Credit)
			out[l.AccountID] = m
		}
	}
	return out, nil
}
