package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UnitOfWork         UnitOfWork
	LedgerRepo         LedgerRepositoryFacade
	ChartRepo          ChartRepositoryFacade
	PeriodRepo         PeriodRepositoryFacade
	JournalRepo        JournalRepositoryFacade
	DimensionRepo      DimensionRepositoryFacade
	PolicyRepo         PolicyRepositoryFacade
	ControlAccountRepo ControlAccountRepositoryFacade
	CurrencyRepo       CurrencyRepositoryFacade
	ExchangeRateRepo   ExchangeRateRepositoryFacade
	OutboxRepo         OutboxRepositoryFacade
}
