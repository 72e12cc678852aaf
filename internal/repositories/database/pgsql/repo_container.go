package pgsql

import (
	portsrepo "github.com/SscSPs/marketplace_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	operationalRepo := newPgxOperationalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:       &BaseRepository{Pool: dbPool},
		AccountRepo:     newPgxAccountRepository(dbPool),
		PeriodRepo:      newPgxPeriodRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		MarketplaceRepo: newPgxMarketplaceRepository(dbPool),
		SalesOrderRepo:  operationalRepo,
		PpobRepo:        operationalRepo,
	}
}
