package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase is the read side of the ledger: balances, trial
// balance and entry queries. Everything here is derived from the line
// log; nothing mutates it.
type LedgerUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	cache       Cache
	cacheTTL    time.Duration
}

// NewLedgerUseCase creates a new LedgerUseCase. cache may be nil.
func NewLedgerUseCase(accountRepo AccountRepository, entryRepo EntryRepository, cache Cache) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		cache:       cache,
		cacheTTL:    BalanceCacheTTL,
	}
}

// WithCacheTTL overrides the default live-balance cache TTL.
func (uc *LedgerUseCase) WithCacheTTL(ttl time.Duration) *LedgerUseCase {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
	return uc
}

// GetBalance returns sum(debit) - sum(credit) over the account's lines
// up to asOf. An account with no lines has a zero balance, not an
// error. Live balances (asOf == nil) are served from the cache when
// possible.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, accountKey string, asOf *time.Time) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByKey(ctx, accountKey)
	if err != nil {
		return decimal.Zero, err
	}

	if asOf == nil && uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, BalanceCacheKey(account.ID)); err == nil && cached != nil {
			if balance, err := decimal.NewFromString(string(cached)); err == nil {
				return balance, nil
			}
		}
	}

	balance, err := uc.entryRepo.SumBalance(ctx, account.ID, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	if asOf == nil && uc.cache != nil {
		_ = uc.cache.Set(ctx, BalanceCacheKey(account.ID), []byte(balance.String()), uc.cacheTTL)
	}

	return balance, nil
}

// TrialBalance is the per-account debit/credit totals as of a date,
// plus grand totals which must match.
type TrialBalance struct {
	Date        time.Time
	Rows        []domain.TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// GetTrialBalance reports every account's totals as of date. The grand
// totals are computed here so callers can assert the system-wide
// invariant without re-summing.
func (uc *LedgerUseCase) GetTrialBalance(ctx context.Context, date time.Time) (*TrialBalance, error) {
	rows, err := uc.entryRepo.TrialBalance(ctx, date)
	if err != nil {
		return nil, err
	}

	tb := &TrialBalance{
		Date:        date,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, row := range rows {
		tb.TotalDebit = tb.TotalDebit.Add(row.DebitTotal)
		tb.TotalCredit = tb.TotalCredit.Add(row.CreditTotal)
	}

	return tb, nil
}

// GetEntries returns entries matching filter, newest first.
func (uc *LedgerUseCase) GetEntries(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	return uc.entryRepo.Find(ctx, filter)
}

// GetEntry returns one entry with its lines.
func (uc *LedgerUseCase) GetEntry(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// CheckConsistency verifies the ledger-wide invariant: the debit
// column and credit column of the whole line log sum to the same
// figure. Since the posting gate enforces this per entry, a failure
// means corruption outside the engine.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	debit, credit, err := uc.entryRepo.SystemTotals(ctx)
	if err != nil {
		return false, err
	}

	if !debit.Equal(credit) {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
