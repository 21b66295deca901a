package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// BalanceCacheTTL bounds staleness of cached live balances; cache
	// entries are also invalidated on every posting to the account.
	BalanceCacheTTL = 5 * time.Minute

	// ZeroBalanceTolerance is the rollup magnitude below which an
	// account is considered zero for display filtering.
	ZeroBalanceTolerance = "0.01"
)
