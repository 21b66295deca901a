package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
)

// AccountRepository defines data access for chart-of-accounts nodes.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByKey resolves an account by code first, then by name.
	GetByKey(ctx context.Context, key string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	// ListAll returns the full chart inside tx's snapshot.
	ListAll(ctx context.Context, tx Transaction) ([]*domain.Account, error)
	UpdateParent(ctx context.Context, id string, parentID *string, updatedAt time.Time) error
}

// AccountSums is the batch debit/credit aggregate for one account.
type AccountSums struct {
	AccountID string
	DebitSum  decimal.Decimal
	CreditSum decimal.Decimal
}

// EntryRepository defines data access for entries and their lines.
type EntryRepository interface {
	// Create persists an entry and all of its lines inside tx.
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	Find(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, error)
	// SumBalance returns sum(debit) - sum(credit) for an account,
	// bounded by asOf when given. No lines yields zero, not an error.
	SumBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
	// SumsByAccount batch-aggregates line totals per account inside
	// tx's snapshot, bounded by asOf when given.
	SumsByAccount(ctx context.Context, tx Transaction, asOf *time.Time) ([]AccountSums, error)
	TrialBalance(ctx context.Context, date time.Time) ([]domain.TrialBalanceRow, error)
	// SystemTotals returns the ledger-wide debit and credit sums.
	SystemTotals(ctx context.Context) (debit, credit decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	// BeginReadOnly starts a repeatable-read read-only transaction so
	// multi-query reports observe one consistent snapshot.
	BeginReadOnly(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation that failed transiently, such as on a
// serialization failure or deadlock.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
