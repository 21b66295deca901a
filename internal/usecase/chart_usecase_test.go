package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/usecase"
	"github.com/tavola/ledger/internal/usecase/mocks"
)

func newChartFixture(accounts []*domain.Account, sums []usecase.AccountSums) (*usecase.ChartUseCase, *mocks.MockTransactionManager) {
	txManager := mocks.NewMockTransactionManager()

	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.ListAllFunc = func(ctx context.Context, tx usecase.Transaction) ([]*domain.Account, error) {
		return accounts, nil
	}

	entryRepo := mocks.NewMockEntryRepository()
	entryRepo.SumsByAccountFunc = func(ctx context.Context, tx usecase.Transaction, asOf *time.Time) ([]usecase.AccountSums, error) {
		return sums, nil
	}

	return usecase.NewChartUseCase(txManager, accountRepo, entryRepo), txManager
}

func findGroup(chart *usecase.ChartStructure, accountType domain.AccountType) *usecase.ChartGroup {
	for _, group := range chart.Groups {
		if group.Type == accountType {
			return group
		}
	}
	return nil
}

func TestChartUseCase_BuildChartStructure_Rollup(t *testing.T) {
	parentID := "acc-1500"

	accounts := []*domain.Account{
		seedAccount("acc-1500", "1500", "Equipment", domain.AccountTypeAsset, nil),
		seedAccount("acc-1510", "1510", "Kitchen Equipment", domain.AccountTypeAsset, &parentID),
	}
	sums := []usecase.AccountSums{
		{AccountID: "acc-1500", DebitSum: decimal.RequireFromString("100"), CreditSum: decimal.Zero},
		{AccountID: "acc-1510", DebitSum: decimal.RequireFromString("50"), CreditSum: decimal.Zero},
	}

	uc, txManager := newChartFixture(accounts, sums)

	chart, err := uc.BuildChartStructure(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := findGroup(chart, domain.AccountTypeAsset)
	if group == nil {
		t.Fatal("expected asset group")
	}
	if len(group.Accounts) != 1 {
		t.Fatalf("expected 1 root asset account, got %d", len(group.Accounts))
	}

	root := group.Accounts[0]
	if !root.Balance.Equal(decimal.RequireFromString("100")) {
		t.Errorf("expected direct balance 100, got %s", root.Balance)
	}
	if !root.RollupBalance.Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected rollup 150, got %s", root.RollupBalance)
	}

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	child := root.Children[0]
	if child.Depth != 1 {
		t.Errorf("expected child depth 1, got %d", child.Depth)
	}
	if !child.RollupBalance.Equal(decimal.RequireFromString("50")) {
		t.Errorf("expected child rollup 50, got %s", child.RollupBalance)
	}

	// The two reads share one read-only snapshot.
	txs := txManager.Transactions()
	if len(txs) != 1 || !txs[0].Committed {
		t.Error("expected one committed snapshot transaction")
	}
}

func TestChartUseCase_BuildChartStructure_CycleRejected(t *testing.T) {
	idA := "acc-a"
	idB := "acc-b"

	accounts := []*domain.Account{
		seedAccount(idA, "1500", "A", domain.AccountTypeAsset, &idB),
		seedAccount(idB, "1510", "B", domain.AccountTypeAsset, &idA),
	}

	uc, _ := newChartFixture(accounts, nil)

	_, err := uc.BuildChartStructure(context.Background(), nil, true)
	if !errors.Is(err, domain.ErrAccountCycle) {
		t.Fatalf("expected ErrAccountCycle, got %v", err)
	}
}

func TestChartUseCase_BuildChartStructure_GroupOrderAndZeroFilter(t *testing.T) {
	accounts := []*domain.Account{
		seedAccount("acc-4100", "4100", "Food Sales", domain.AccountTypeRevenue, nil),
		seedAccount("acc-1000", "1000", "Cash", domain.AccountTypeAsset, nil),
		seedAccount("acc-2100", "2100", "Accounts Payable", domain.AccountTypeLiability, nil),
		seedAccount("acc-5100", "5100", "Cost of Goods Sold", domain.AccountTypeExpense, nil),
	}
	sums := []usecase.AccountSums{
		{AccountID: "acc-1000", DebitSum: decimal.RequireFromString("100"), CreditSum: decimal.Zero},
		{AccountID: "acc-4100", DebitSum: decimal.Zero, CreditSum: decimal.RequireFromString("100")},
		// Payable nets to zero, COGS has no lines at all.
		{AccountID: "acc-2100", DebitSum: decimal.RequireFromString("30"), CreditSum: decimal.RequireFromString("30")},
	}

	uc, _ := newChartFixture(accounts, sums)

	chart, err := uc.BuildChartStructure(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chart.Groups) != 2 {
		t.Fatalf("expected 2 non-empty groups, got %d", len(chart.Groups))
	}
	if chart.Groups[0].Type != domain.AccountTypeAsset {
		t.Errorf("expected assets first, got %s", chart.Groups[0].Type)
	}
	if chart.Groups[1].Type != domain.AccountTypeRevenue {
		t.Errorf("expected revenue second, got %s", chart.Groups[1].Type)
	}

	// With zero balances included, every type with accounts shows up.
	chart, err = uc.BuildChartStructure(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if findGroup(chart, domain.AccountTypeLiability) == nil {
		t.Error("expected liability group when zero balances included")
	}
	if findGroup(chart, domain.AccountTypeExpense) == nil {
		t.Error("expected expense group when zero balances included")
	}
}

func TestChartUseCase_BuildChartStructure_OrphanParentTreatedAsRoot(t *testing.T) {
	ghost := "acc-ghost"

	accounts := []*domain.Account{
		seedAccount("acc-1510", "1510", "Kitchen Equipment", domain.AccountTypeAsset, &ghost),
	}
	sums := []usecase.AccountSums{
		{AccountID: "acc-1510", DebitSum: decimal.RequireFromString("50"), CreditSum: decimal.Zero},
	}

	uc, _ := newChartFixture(accounts, sums)

	chart, err := uc.BuildChartStructure(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	group := findGroup(chart, domain.AccountTypeAsset)
	if group == nil || len(group.Accounts) != 1 {
		t.Fatal("expected orphan account surfaced as a root")
	}
	if !group.Accounts[0].RollupBalance.Equal(decimal.RequireFromString("50")) {
		t.Errorf("expected rollup 50, got %s", group.Accounts[0].RollupBalance)
	}
}

func TestChartUseCase_CalculateTotals(t *testing.T) {
	accounts := []*domain.Account{
		seedAccount("acc-1000", "1000", "Cash", domain.AccountTypeAsset, nil),
		seedAccount("acc-1650", "1650", "Accumulated Depreciation", domain.AccountTypeAssetContra, nil),
		seedAccount("acc-2100", "2100", "Accounts Payable", domain.AccountTypeLiability, nil),
		seedAccount("acc-3000", "3000", "Owner Capital", domain.AccountTypeEquity, nil),
		seedAccount("acc-4100", "4100", "Food Sales", domain.AccountTypeRevenue, nil),
		seedAccount("acc-4500", "4500", "Sales Returns", domain.AccountTypeRevenueContra, nil),
		seedAccount("acc-5100", "5100", "Cost of Goods Sold", domain.AccountTypeExpense, nil),
	}
	sums := []usecase.AccountSums{
		{AccountID: "acc-1000", DebitSum: decimal.RequireFromString("500"), CreditSum: decimal.Zero},
		{AccountID: "acc-1650", DebitSum: decimal.Zero, CreditSum: decimal.RequireFromString("50")},
		{AccountID: "acc-2100", DebitSum: decimal.Zero, CreditSum: decimal.RequireFromString("120")},
		{AccountID: "acc-3000", DebitSum: decimal.Zero, CreditSum: decimal.RequireFromString("200")},
		{AccountID: "acc-4100", DebitSum: decimal.Zero, CreditSum: decimal.RequireFromString("300")},
		{AccountID: "acc-4500", DebitSum: decimal.RequireFromString("20"), CreditSum: decimal.Zero},
		{AccountID: "acc-5100", DebitSum: decimal.RequireFromString("150"), CreditSum: decimal.Zero},
	}

	uc, _ := newChartFixture(accounts, sums)

	chart, err := uc.BuildChartStructure(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := uc.CalculateTotals(chart)

	if !totals.TotalAssets.Equal(decimal.RequireFromString("450")) {
		t.Errorf("expected assets 450, got %s", totals.TotalAssets)
	}
	if !totals.TotalLiabilities.Equal(decimal.RequireFromString("120")) {
		t.Errorf("expected liabilities 120, got %s", totals.TotalLiabilities)
	}
	if !totals.TotalEquity.Equal(decimal.RequireFromString("200")) {
		t.Errorf("expected equity 200, got %s", totals.TotalEquity)
	}
	if !totals.TotalRevenue.Equal(decimal.RequireFromString("280")) {
		t.Errorf("expected revenue 280, got %s", totals.TotalRevenue)
	}
	if !totals.TotalExpenses.Equal(decimal.RequireFromString("150")) {
		t.Errorf("expected expenses 150, got %s", totals.TotalExpenses)
	}
	if !totals.NetIncome.Equal(decimal.RequireFromString("130")) {
		t.Errorf("expected net income 130, got %s", totals.NetIncome)
	}
	// 450 - 120 - 200 = 130 = net income: the equation closes.
	if !totals.AssetsLiabilitiesEquity.Equal(totals.NetIncome) {
		t.Errorf("equation gap %s does not match net income %s", totals.AssetsLiabilitiesEquity, totals.NetIncome)
	}
}

func TestChartUseCase_ExportCSV(t *testing.T) {
	parentID := "acc-1500"

	accounts := []*domain.Account{
		seedAccount("acc-1500", "1500", "Equipment", domain.AccountTypeAsset, nil),
		seedAccount("acc-1510", "1510", "Kitchen Equipment", domain.AccountTypeAsset, &parentID),
		seedAccount("acc-4100", "4100", "Food Sales", domain.AccountTypeRevenue, nil),
	}
	sums := []usecase.AccountSums{
		{AccountID: "acc-1500", DebitSum: decimal.RequireFromString("100"), CreditSum: decimal.Zero},
		{AccountID: "acc-1510", DebitSum: decimal.RequireFromString("50"), CreditSum: decimal.Zero},
		{AccountID: "acc-4100", DebitSum: decimal.Zero, CreditSum: decimal.RequireFromString("150")},
	}

	uc, _ := newChartFixture(accounts, sums)

	chart, err := uc.BuildChartStructure(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := uc.ExportCSV(chart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")

	if lines[0] != "Type,Code,Account Name,Direct Balance,Rollup Balance,As Of Date" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	joined := string(out)
	if !strings.Contains(joined, "asset,1500,Equipment,100.00,150.00,") {
		t.Errorf("missing parent row in:\n%s", joined)
	}
	// csv quotes the depth-indented name because of its leading spaces.
	if !strings.Contains(joined, `asset,1510,"  Kitchen Equipment",50.00,50.00,`) {
		t.Errorf("missing indented child row in:\n%s", joined)
	}
	if !strings.Contains(joined, "revenue,,,,-150.00,") {
		t.Errorf("missing revenue group summary in:\n%s", joined)
	}

	// One blank separator row between the two groups.
	if !strings.Contains(joined, "\n,,,,,\n") {
		t.Errorf("missing group separator in:\n%s", joined)
	}
}
