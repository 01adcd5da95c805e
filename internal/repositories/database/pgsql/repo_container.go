package pgsql

import (
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TaxonomyRepo:       newPgxTaxonomyRepository(dbPool),
		GroupRepo:          newPgxGroupRepository(dbPool),
		AccountRepo:        newPgxAccountRepository(dbPool),
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		ValuationRepo:      newPgxValuationRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		SettingRepo:        newPgxSettingRepository(dbPool),
		TenancyRepo:        newPgxTenancyRepository(dbPool),
		InterchangeRepo:    newPgxInterchangeRepository(dbPool),
	}
}
