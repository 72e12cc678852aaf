package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/google/uuid"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, opts ...Option) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	svc.apply(opts)
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) ResolveAccountID(ctx context.Context, tenantID, code string) (string, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		return "", err
	}
	return acc.AccountID, nil
}

func (s *accountService) ResolveAccounts(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	unique := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}

	found, err := s.accountRepo.FindAccountsByCodes(ctx, tenantID, unique)
	if err != nil {
		return nil, err
	}
	for _, c := range unique {
		acc, ok := found[c]
		if !ok {
			return nil, fmt.Errorf("%w: account %s does not exist for tenant %s", apperrors.ErrChartOfAccountsMisconfigured, c, tenantID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive for tenant %s", apperrors.ErrChartOfAccountsMisconfigured, c, tenantID)
		}
	}
	return found, nil
}

func (s *accountService) GetAccount(ctx context.Context, tenantID, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, tenantID, code)
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, tenantID)
}

func (s *accountService) EnsureAccount(ctx context.Context, tenantID string, spec domain.AccountSpec, actor string) (*domain.Account, error) {
	spec.Code = strings.TrimSpace(spec.Code)
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Code == "" || spec.Name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	if !spec.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, spec.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, spec.Code)
	switch {
	case err == nil:
		if existing.AccountType != spec.AccountType {
			return nil, fmt.Errorf("%w: account %s is %s and cannot become %s",
				apperrors.ErrConflict, spec.Code, existing.AccountType, spec.AccountType)
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	if spec.ParentCode != "" {
		parent, err := s.accountRepo.FindAccountByCode(ctx, tenantID, spec.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, spec.ParentCode)
			}
			return nil, err
		}
		if parent.AccountType != spec.AccountType {
			return nil, fmt.Errorf("%w: parent %s is %s, child %s is %s",
				apperrors.ErrValidation, parent.Code, parent.AccountType, spec.Code, spec.AccountType)
		}
	}

	now := s.Now()
	acc := domain.Account{
		AccountID:     uuid.NewString(),
		TenantID:      tenantID,
		Code:          spec.Code,
		Name:          spec.Name,
		AccountType:   spec.AccountType,
		NormalBalance: spec.AccountType.NormalBalance(),
		ParentCode:    spec.ParentCode,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(actor, now),
	}
	stored, err := s.accountRepo.UpsertAccount(ctx, acc)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert account", slog.String("tenant_id", tenantID), slog.String("code", spec.Code))
		return nil, err
	}
	return stored, nil
}

func (s *accountService) SeedDefaultChart(ctx context.Context, tenantID, actor string) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(domain.DefaultChart))
	for _, spec := range domain.DefaultChart {
		acc, err := s.EnsureAccount(ctx, tenantID, spec, actor)
		if err != nil {
			return nil, fmt.Errorf("seeding account %s: %w", spec.Code, err)
		}
		out = append(out, *acc)
	}
	s.LogInfo(ctx, "Seeded default chart of accounts", slog.String("tenant_id", tenantID), slog.Int("accounts", len(out)))
	return out, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, tenantID, code, actor string) error {
	if _, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, code, actor, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("tenant_id", tenantID), slog.String("code", code))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("tenant_id", tenantID), slog.String("code", code))
	return nil
}
