package integration

import (
	"testing"

	postgresrepo "github.com/tavola/ledger/internal/adapter/repository/postgres"
	"github.com/tavola/ledger/internal/journal"
	"github.com/tavola/ledger/internal/usecase"
	"github.com/tavola/ledger/tests/testutil"
)

// ledgerStack wires the use cases against a real database, the same
// way cmd/server does, minus Redis.
type ledgerStack struct {
	Accounts *usecase.AccountUseCase
	Posting  *usecase.PostingUseCase
	Ledger   *usecase.LedgerUseCase
	Chart    *usecase.ChartUseCase
	Catalog  *journal.Catalog
}

func newLedgerStack(t *testing.T, testDB *testutil.TestDB) *ledgerStack {
	t.Helper()

	pool := testDB.Pool
	txManager := postgresrepo.NewTxManager(pool)
	accountRepo := postgresrepo.NewAccountRepository(pool)
	entryRepo := postgresrepo.NewEntryRepository(pool)
	outboxRepo := postgresrepo.NewOutboxRepository(pool)
	auditRepo := postgresrepo.NewAuditRepository(pool)
	idGen := postgresrepo.NewULIDGenerator()
	catalog := journal.NewDefaultCatalog()

	return &ledgerStack{
		Accounts: usecase.NewAccountUseCase(accountRepo, auditRepo, idGen),
		Posting:  usecase.NewPostingUseCase(txManager, accountRepo, entryRepo, outboxRepo, auditRepo, catalog, idGen, nil),
		Ledger:   usecase.NewLedgerUseCase(accountRepo, entryRepo, nil),
		Chart:    usecase.NewChartUseCase(txManager, accountRepo, entryRepo),
		Catalog:  catalog,
	}
}
