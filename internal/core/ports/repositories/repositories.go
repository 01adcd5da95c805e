package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	TaxonomyRepo       TaxonomyRepository
	GroupRepo          GroupRepository
	AccountRepo        AccountRepository
	TransactionRepo    TransactionRepository
	ValuationRepo      ValuationRepository
	ReconciliationRepo ReconciliationRepository
	SettingRepo        SettingRepository
	TenancyRepo        TenancyRepository
	InterchangeRepo    InterchangeRepository
}
