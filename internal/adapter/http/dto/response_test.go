package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/usecase"
)

func TestBalanceFromDomain_DisplayConvention(t *testing.T) {
	tests := []struct {
		name     string
		account  *domain.Account
		balance  string
		display  string
		abnormal bool
	}{
		{
			name:    "asset debit balance displays positive",
			account: &domain.Account{ID: "acc-1", Code: "1000", Type: domain.AccountTypeAsset},
			balance: "100.00",
			display: "100.00",
		},
		{
			name:    "revenue credit balance displays positive",
			account: &domain.Account{ID: "acc-2", Code: "4100", Type: domain.AccountTypeRevenue},
			balance: "-120.00",
			display: "120.00",
		},
		{
			name:     "asset credit balance is abnormal",
			account:  &domain.Account{ID: "acc-3", Code: "1000", Type: domain.AccountTypeAsset},
			balance:  "-5.00",
			display:  "5.00",
			abnormal: true,
		},
		{
			name:     "liability debit balance is abnormal",
			account:  &domain.Account{ID: "acc-4", Code: "2100", Type: domain.AccountTypeLiability},
			balance:  "30.00",
			display:  "30.00",
			abnormal: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp := BalanceFromDomain(tt.account, decimal.RequireFromString(tt.balance), nil)

			if !resp.Balance.Equal(decimal.RequireFromString(tt.balance)) {
				t.Fatalf("expected raw balance %s, got %s", tt.balance, resp.Balance)
			}
			if !resp.DisplayValue.Equal(decimal.RequireFromString(tt.display)) {
				t.Fatalf("expected display %s, got %s", tt.display, resp.DisplayValue)
			}
			if resp.Abnormal != tt.abnormal {
				t.Fatalf("expected abnormal=%v, got %v", tt.abnormal, resp.Abnormal)
			}
		})
	}
}

func TestEntryFromDomain(t *testing.T) {
	now := time.Now().UTC()
	entry := &domain.LedgerEntry{
		ID:              "entry-1",
		TransactionType: "revenue",
		ReferenceType:   "order",
		ReferenceID:     "order-42",
		OccurredAt:      now,
		Metadata:        map[string]any{"table": "12"},
		Lines: []*domain.LedgerEntryLine{
			{ID: "line-1", EntryID: "entry-1", AccountID: "acc-1", Debit: decimal.RequireFromString("88.00")},
			{ID: "line-2", EntryID: "entry-1", AccountID: "acc-2", Credit: decimal.RequireFromString("88.00")},
		},
		CreatedAt: now,
	}

	resp := EntryFromDomain(entry)

	if resp.ID != "entry-1" || resp.TransactionType != "revenue" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(resp.Lines))
	}
	if !resp.Lines[0].Debit.Equal(decimal.RequireFromString("88.00")) {
		t.Fatalf("unexpected debit line: %+v", resp.Lines[0])
	}
}

func TestTrialBalanceFromUseCase_BalancedFlag(t *testing.T) {
	tb := &usecase.TrialBalance{
		Date: time.Now().UTC(),
		Rows: []domain.TrialBalanceRow{
			{AccountID: "acc-1", AccountCode: "1000", AccountType: domain.AccountTypeAsset, DebitTotal: decimal.RequireFromString("100.00"), CreditTotal: decimal.Zero},
		},
		TotalDebit:  decimal.RequireFromString("100.00"),
		TotalCredit: decimal.RequireFromString("100.00"),
	}

	resp := TrialBalanceFromUseCase(tb)
	if !resp.Balanced {
		t.Fatal("expected balanced flag")
	}

	tb.TotalCredit = decimal.RequireFromString("99.00")
	resp = TrialBalanceFromUseCase(tb)
	if resp.Balanced {
		t.Fatal("expected unbalanced flag")
	}
}

func TestChartFromUseCase_NestsChildren(t *testing.T) {
	parent := &usecase.ChartAccount{
		Account:       &domain.Account{ID: "acc-1", Code: "1500", Name: "Equipment", Type: domain.AccountTypeAsset},
		Balance:       decimal.RequireFromString("100.00"),
		RollupBalance: decimal.RequireFromString("150.00"),
	}
	parent.Children = []*usecase.ChartAccount{
		{
			Account:       &domain.Account{ID: "acc-2", Code: "1510", Name: "Kitchen Equipment", Type: domain.AccountTypeAsset},
			Balance:       decimal.RequireFromString("50.00"),
			RollupBalance: decimal.RequireFromString("50.00"),
			Depth:         1,
		},
	}

	chart := &usecase.ChartStructure{
		Groups: []*usecase.ChartGroup{
			{Type: domain.AccountTypeAsset, Accounts: []*usecase.ChartAccount{parent}, Total: decimal.RequireFromString("150.00")},
		},
	}

	resp := ChartFromUseCase(chart)

	if len(resp.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(resp.Groups))
	}

	root := resp.Groups[0].Accounts[0]
	if root.Code != "1500" || !root.RollupBalance.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Children) != 1 || root.Children[0].Depth != 1 {
		t.Fatalf("unexpected children: %+v", root.Children)
	}
}
