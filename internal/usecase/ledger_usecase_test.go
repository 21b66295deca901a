package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/usecase"
	"github.com/tavola/ledger/internal/usecase/mocks"
)

func TestLedgerUseCase_GetBalance(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(seedAccount("acc-1000", "1000", "Cash", domain.AccountTypeAsset, nil))

	entryRepo := mocks.NewMockEntryRepository()

	calls := 0
	entryRepo.SumBalanceFunc = func(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
		calls++
		return decimal.RequireFromString("75.50"), nil
	}

	cache := mocks.NewMockCache()
	uc := usecase.NewLedgerUseCase(accountRepo, entryRepo, cache)

	balance, err := uc.GetBalance(context.Background(), "1000", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("75.50")) {
		t.Errorf("expected 75.50, got %s", balance)
	}
	if calls != 1 {
		t.Fatalf("expected 1 repo call, got %d", calls)
	}

	// Second live read is served from the cache.
	balance, err = uc.GetBalance(context.Background(), "1000", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("75.50")) {
		t.Errorf("expected cached 75.50, got %s", balance)
	}
	if calls != 1 {
		t.Errorf("expected cache hit, repo called %d times", calls)
	}

	// Historical reads always go to the repository.
	asOf := time.Now().UTC()
	if _, err := uc.GetBalance(context.Background(), "1000", &asOf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected as-of read to bypass cache, repo called %d times", calls)
	}
}

func TestLedgerUseCase_GetBalance_NoLinesIsZero(t *testing.T) {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(seedAccount("acc-1000", "1000", "Cash", domain.AccountTypeAsset, nil))

	uc := usecase.NewLedgerUseCase(accountRepo, mocks.NewMockEntryRepository(), nil)

	balance, err := uc.GetBalance(context.Background(), "1000", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.IsZero() {
		t.Errorf("expected zero balance, got %s", balance)
	}
}

func TestLedgerUseCase_GetBalance_UnknownAccount(t *testing.T) {
	uc := usecase.NewLedgerUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository(), nil)

	if _, err := uc.GetBalance(context.Background(), "9999", nil); !errors.Is(err, domain.ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
}

func TestLedgerUseCase_GetTrialBalance(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	entryRepo.TrialBalanceFunc = func(ctx context.Context, date time.Time) ([]domain.TrialBalanceRow, error) {
		return []domain.TrialBalanceRow{
			{AccountID: "acc-1000", AccountCode: "1000", AccountName: "Cash", AccountType: domain.AccountTypeAsset, DebitTotal: decimal.RequireFromString("100"), CreditTotal: decimal.Zero},
			{AccountID: "acc-2300", AccountCode: "2300", AccountName: "Customer Deposits", AccountType: domain.AccountTypeLiability, DebitTotal: decimal.Zero, CreditTotal: decimal.RequireFromString("100")},
		}, nil
	}

	uc := usecase.NewLedgerUseCase(mocks.NewMockAccountRepository(), entryRepo, nil)

	tb, err := uc.GetTrialBalance(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tb.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tb.Rows))
	}
	if !tb.TotalDebit.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected total debit 100, got %s", tb.TotalDebit)
	}
	if !tb.TotalCredit.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected total credit 100, got %s", tb.TotalCredit)
	}
	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		t.Error("trial balance totals must match")
	}
}

func TestLedgerUseCase_GetEntries_LimitDefaults(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()

	var gotLimit int
	entryRepo.FindFunc = func(ctx context.Context, filter domain.EntryFilter) ([]*domain.LedgerEntry, error) {
		gotLimit = filter.Limit
		return nil, nil
	}

	uc := usecase.NewLedgerUseCase(mocks.NewMockAccountRepository(), entryRepo, nil)

	if _, err := uc.GetEntries(context.Background(), domain.EntryFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("expected default limit 50, got %d", gotLimit)
	}

	if _, err := uc.GetEntries(context.Background(), domain.EntryFilter{Limit: 9999}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 500 {
		t.Errorf("expected limit capped at 500, got %d", gotLimit)
	}
}

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()

	uc := usecase.NewLedgerUseCase(mocks.NewMockAccountRepository(), entryRepo, nil)

	ok, err := uc.CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected empty ledger to be consistent")
	}

	entryRepo.SystemTotalsFunc = func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
		return decimal.RequireFromString("100"), decimal.RequireFromString("99"), nil
	}

	ok, err = uc.CheckConsistency(context.Background())
	if !errors.Is(err, usecase.ErrInconsistentLedger) {
		t.Fatalf("expected ErrInconsistentLedger, got %v", err)
	}
	if ok {
		t.Error("expected inconsistent ledger reported")
	}
}
