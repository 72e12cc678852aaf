package services

import (
	"github.com/SscSPs/marketplace_ledger/internal/channels/ppob"
	"github.com/SscSPs/marketplace_ledger/internal/channels/retail"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/marketplace_ledger/internal/core/ports/services"
	"github.com/SscSPs/marketplace_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, opts...)
	container.Period = NewPeriodService(
		domain.PeriodMode(cfg.PeriodMode),
		repos.TxManager,
		repos.PeriodRepo,
		repos.AccountRepo,
		repos.JournalRepo,
		opts...,
	)
	container.Journal = NewJournalService(repos.TxManager, repos.JournalRepo, repos.PeriodRepo, container.Account, container.Period, opts...)

	// Reference channel collaborators
	container.Marketplace = NewMarketplaceService(
		repos.TxManager,
		repos.MarketplaceRepo,
		container.Journal,
		retail.New(repos.SalesOrderRepo),
		ppob.New(repos.PpobRepo),
		cfg.DuplicateResumeAttempts,
		opts...,
	)
	container.Reconciliation = NewReconciliationService(repos.MarketplaceRepo, container.Marketplace, opts...)

	return container
}
