package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx store over one pool. They share the
// transaction that the unit of work binds to the context.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:         newPgxUnitOfWork(dbPool),
		LedgerRepo:         newPgxLedgerRepository(dbPool),
		ChartRepo:          newPgxChartRepository(dbPool),
		PeriodRepo:         newPgxPeriodRepository(dbPool),
		JournalRepo:        newPgxJournalRepository(dbPool),
		DimensionRepo:      newPgxDimensionRepository(dbPool),
		PolicyRepo:         newPgxPolicyRepository(dbPool),
		ControlAccountRepo: newPgxControlAccountRepository(dbPool),
		CurrencyRepo:       newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:   newPgxExchangeRateRepository(dbPool),
		OutboxRepo:         newPgxOutboxRepository(dbPool),
	}
}
