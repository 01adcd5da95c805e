package services

import (
	"github.com/famledger/famledger/internal/core/domain"
	portsrepo "github.com/famledger/famledger/internal/core/ports/repositories"
	portssvc "github.com/famledger/famledger/internal/core/ports/services"
)

// NewServiceContainer wires every service with its dependencies. Tenancy and
// reconciliation come first since the ledger store depends on both.
func NewServiceContainer(taxonomy domain.Taxonomy, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Tenancy = NewTenancyService(repos.TenancyRepo)

	container.Reconciliation = NewReconciliationService(
		taxonomy,
		repos.GroupRepo,
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.ReconciliationRepo,
	)

	container.Ledger = NewLedgerService(
		taxonomy,
		repos.GroupRepo,
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.SettingRepo,
		container.Tenancy,
		container.Reconciliation,
	)

	container.Valuation = NewValuationService(
		taxonomy,
		repos.GroupRepo,
		repos.AccountRepo,
		repos.ValuationRepo,
		repos.SettingRepo,
		container.Tenancy,
	)

	container.Query = NewQueryService(repos.TransactionRepo, container.Tenancy)
	container.Interchange = NewInterchangeService(repos.InterchangeRepo)

	return container
}
