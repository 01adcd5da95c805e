package services

// ServiceContainer bundles every service facade for handler registration.
type ServiceContainer struct {
	Ledger         LedgerSvcFacade
	Valuation      ValuationSvcFacade
	Reconciliation ReconciliationSvcFacade
	Query          QuerySvcFacade
	Tenancy        TenancySvcFacade
	Interchange    InterchangeSvcFacade
}
