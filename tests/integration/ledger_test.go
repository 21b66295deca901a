package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/usecase"
	"github.com/tavola/ledger/tests/testutil"
)

func TestTrialBalanceBalancedAfterPostings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.ResetLedger(ctx)

	stack := newLedgerStack(t, testDB)

	postings := []usecase.PostEventInput{
		{Template: "order_prepayment", Amounts: domain.AmountsBag{"prepayment": decimal.RequireFromString("50.00")}},
		{Template: "stock_receipt", Amounts: domain.AmountsBag{"receipt_total": decimal.RequireFromString("310.25")}},
		{Template: "cogs_on_fulfillment", Amounts: domain.AmountsBag{"cogs_total": decimal.RequireFromString("42.10")}},
	}
	for _, input := range postings {
		if _, err := stack.Posting.PostEvent(ctx, input); err != nil {
			t.Fatalf("PostEvent(%s) failed: %v", input.Template, err)
		}
	}

	tb, err := stack.Ledger.GetTrialBalance(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("GetTrialBalance failed: %v", err)
	}

	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		t.Errorf("trial balance not balanced: debit=%s credit=%s", tb.TotalDebit, tb.TotalCredit)
	}
	want := decimal.RequireFromString("402.35")
	if !tb.TotalDebit.Equal(want) {
		t.Errorf("total debit = %s, want %s", tb.TotalDebit, want)
	}
	if len(tb.Rows) == 0 {
		t.Error("trial balance has no rows")
	}
}

func TestBalanceAsOf(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.ResetLedger(ctx)

	stack := newLedgerStack(t, testDB)

	lastWeek := time.Now().UTC().AddDate(0, 0, -7)
	if _, err := stack.Posting.PostEvent(ctx, usecase.PostEventInput{
		Template:   "invoice_payment",
		Amounts:    domain.AmountsBag{"amount": decimal.RequireFromString("200.00")},
		OccurredAt: &lastWeek,
	}); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}
	if _, err := stack.Posting.PostEvent(ctx, usecase.PostEventInput{
		Template: "invoice_payment",
		Amounts:  domain.AmountsBag{"amount": decimal.RequireFromString("300.00")},
	}); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	// As of three days ago only the first payment is visible.
	asOf := time.Now().UTC().AddDate(0, 0, -3)
	past, err := stack.Ledger.GetBalance(ctx, "1000", &asOf)
	if err != nil {
		t.Fatalf("GetBalance as-of failed: %v", err)
	}
	if !past.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("as-of balance = %s, want 200.00", past)
	}

	live, err := stack.Ledger.GetBalance(ctx, "1000", nil)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if !live.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("live balance = %s, want 500.00", live)
	}
}

func TestGetEntriesFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.ResetLedger(ctx)

	stack := newLedgerStack(t, testDB)

	if _, err := stack.Posting.PostEvent(ctx, usecase.PostEventInput{
		Template:      "order_prepayment",
		Amounts:       domain.AmountsBag{"prepayment": decimal.RequireFromString("10.00")},
		ReferenceType: "order",
		ReferenceID:   "ord-42",
	}); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}
	if _, err := stack.Posting.PostEvent(ctx, usecase.PostEventInput{
		Template: "inventory_spoilage",
		Amounts:  domain.AmountsBag{"spoilage_cost": decimal.RequireFromString("3.50")},
	}); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	byRef, err := stack.Ledger.GetEntries(ctx, domain.EntryFilter{ReferenceType: "order", ReferenceID: "ord-42"})
	if err != nil {
		t.Fatalf("GetEntries by reference failed: %v", err)
	}
	if len(byRef) != 1 {
		t.Fatalf("entries by reference = %d, want 1", len(byRef))
	}
	if byRef[0].TransactionType != "prepayment" {
		t.Errorf("transaction type = %s, want prepayment", byRef[0].TransactionType)
	}

	byType, err := stack.Ledger.GetEntries(ctx, domain.EntryFilter{TransactionType: "adjustment"})
	if err != nil {
		t.Fatalf("GetEntries by type failed: %v", err)
	}
	if len(byType) != 1 {
		t.Fatalf("entries by type = %d, want 1", len(byType))
	}
}

func TestCheckConsistency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.ResetLedger(ctx)

	stack := newLedgerStack(t, testDB)

	if _, err := stack.Posting.PostEvent(ctx, usecase.PostEventInput{
		Template: "vendor_payment",
		Amounts:  domain.AmountsBag{"amount": decimal.RequireFromString("75.00")},
	}); err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	ok, err := stack.Ledger.CheckConsistency(ctx)
	if err != nil {
		t.Fatalf("CheckConsistency failed: %v", err)
	}
	if !ok {
		t.Error("ledger reported inconsistent after balanced postings")
	}
}

func TestCheckConsistencyDetectsCorruption(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.ResetLedger(ctx)

	stack := newLedgerStack(t, testDB)

	entry, err := stack.Posting.PostEvent(ctx, usecase.PostEventInput{
		Template: "vendor_payment",
		Amounts:  domain.AmountsBag{"amount": decimal.RequireFromString("75.00")},
	})
	if err != nil {
		t.Fatalf("PostEvent failed: %v", err)
	}

	// Damage the line log behind the posting gate's back.
	if _, err := testDB.Pool.Exec(ctx,
		"DELETE FROM ledger_entry_lines WHERE entry_id = $1 AND credit > 0", entry.ID,
	); err != nil {
		t.Fatalf("failed to corrupt line log: %v", err)
	}

	ok, err := stack.Ledger.CheckConsistency(ctx)
	if ok {
		t.Error("consistency check passed on corrupted ledger")
	}
	if !errors.Is(err, usecase.ErrInconsistentLedger) {
		t.Errorf("error = %v, want ErrInconsistentLedger", err)
	}
}
