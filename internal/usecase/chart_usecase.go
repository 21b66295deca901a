package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
)

// ChartUseCase derives account balances and hierarchical rollups from
// the append-only line log. Nothing here is stored: every number is
// recomputed from lines on each call.
type ChartUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewChartUseCase creates a new ChartUseCase.
func NewChartUseCase(txManager TransactionManager, accountRepo AccountRepository, entryRepo EntryRepository) *ChartUseCase {
	return &ChartUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// ChartAccount is one account in the computed chart structure.
type ChartAccount struct {
	Account       *domain.Account
	DebitSum      decimal.Decimal
	CreditSum     decimal.Decimal
	Balance       decimal.Decimal
	RollupBalance decimal.Decimal
	Depth         int
	Children      []*ChartAccount
}

// ChartGroup is one type family's root accounts in display order.
type ChartGroup struct {
	Type     domain.AccountType
	Accounts []*ChartAccount
	Total    decimal.Decimal
}

// ChartStructure is the full grouped chart as of a point in time.
type ChartStructure struct {
	AsOf   *time.Time
	Groups []*ChartGroup
}

// ChartTotals reports per-family totals and the accounting equation.
// Informational only: the equation is reported, never enforced here.
type ChartTotals struct {
	TotalAssets             decimal.Decimal
	TotalLiabilities        decimal.Decimal
	TotalEquity             decimal.Decimal
	TotalRevenue            decimal.Decimal
	TotalExpenses           decimal.Decimal
	NetIncome               decimal.Decimal
	AssetsLiabilitiesEquity decimal.Decimal
}

// BuildChartStructure aggregates all lines by account, builds the
// account tree and computes bottom-up rollups, grouped by type in the
// fixed display order. Both reads run inside one read-only snapshot so
// a concurrent posting cannot be half-observed.
func (uc *ChartUseCase) BuildChartStructure(ctx context.Context, asOf *time.Time, includeZeroBalances bool) (*ChartStructure, error) {
	tx, err := uc.txManager.BeginReadOnly(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.ListAll(ctx, tx)
	if err != nil {
		return nil, err
	}

	sums, err := uc.entryRepo.SumsByAccount(ctx, tx, asOf)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return buildChart(accounts, sums, asOf, includeZeroBalances)
}

// buildChart is the pure computation: arena-indexed tree construction,
// cycle rejection, rollups, grouping and zero filtering.
func buildChart(accounts []*domain.Account, sums []AccountSums, asOf *time.Time, includeZeroBalances bool) (*ChartStructure, error) {
	sumIndex := make(map[string]AccountSums, len(sums))
	for _, s := range sums {
		sumIndex[s.AccountID] = s
	}

	// Arena keyed by account id; parent/child lookups are index hits,
	// never live object pointers.
	arena := make(map[string]*ChartAccount, len(accounts))
	for _, account := range accounts {
		node := &ChartAccount{Account: account}

		if s, ok := sumIndex[account.ID]; ok {
			node.DebitSum = s.DebitSum
			node.CreditSum = s.CreditSum
		} else {
			node.DebitSum = decimal.Zero
			node.CreditSum = decimal.Zero
		}

		node.Balance = node.DebitSum.Sub(node.CreditSum)
		arena[account.ID] = node
	}

	if err := detectCycles(accounts); err != nil {
		return nil, err
	}

	var roots []*ChartAccount
	for _, account := range accounts {
		node := arena[account.ID]

		if account.ParentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := arena[*account.ParentID]
		if !ok {
			// Orphaned parent reference; treat as a root rather than
			// dropping the subtree.
			roots = append(roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
	}

	for _, root := range roots {
		computeRollup(root, 0)
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Account.Code < roots[j].Account.Code
	})

	tolerance := decimal.RequireFromString(ZeroBalanceTolerance)

	structure := &ChartStructure{AsOf: asOf}

	for _, accountType := range domain.AccountTypeOrder {
		group := &ChartGroup{Type: accountType, Total: decimal.Zero}

		for _, root := range roots {
			if root.Account.Type != accountType {
				continue
			}

			if !includeZeroBalances && root.RollupBalance.Abs().LessThan(tolerance) {
				continue
			}

			group.Accounts = append(group.Accounts, root)
			group.Total = group.Total.Add(root.RollupBalance)
		}

		if len(group.Accounts) == 0 && !includeZeroBalances {
			continue
		}

		structure.Groups = append(structure.Groups, group)
	}

	return structure, nil
}

// detectCycles walks each account's parent chain. A chain longer than
// the account count proves a cycle; so does revisiting the start.
func detectCycles(accounts []*domain.Account) error {
	index := make(map[string]*domain.Account, len(accounts))
	for _, account := range accounts {
		index[account.ID] = account
	}

	for _, account := range accounts {
		steps := 0
		cursor := account

		for cursor.ParentID != nil {
			parent, ok := index[*cursor.ParentID]
			if !ok {
				break
			}

			if parent.ID == account.ID {
				return fmt.Errorf("%w: account %s", domain.ErrAccountCycle, account.Code)
			}

			steps++
			if steps > len(accounts) {
				return fmt.Errorf("%w: account %s", domain.ErrAccountCycle, account.Code)
			}

			cursor = parent
		}
	}

	return nil
}

// computeRollup fills RollupBalance and Depth bottom-up: a leaf's
// rollup is its own balance, an internal node adds its children's
// rollups. Children are ordered by code for stable output.
func computeRollup(node *ChartAccount, depth int) decimal.Decimal {
	node.Depth = depth

	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Account.Code < node.Children[j].Account.Code
	})

	rollup := node.Balance
	for _, child := range node.Children {
		rollup = rollup.Add(computeRollup(child, depth+1))
	}

	node.RollupBalance = rollup

	return rollup
}

// CalculateTotals accumulates per-family totals from a chart,
// flipping sign for contra types, and reports net income.
func (uc *ChartUseCase) CalculateTotals(chart *ChartStructure) ChartTotals {
	totals := ChartTotals{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
	}

	for _, group := range chart.Groups {
		for _, node := range group.Accounts {
			amount := node.RollupBalance

			switch group.Type {
			case domain.AccountTypeAsset:
				totals.TotalAssets = totals.TotalAssets.Add(amount)
			case domain.AccountTypeAssetContra:
				totals.TotalAssets = totals.TotalAssets.Sub(amount.Neg())
			case domain.AccountTypeLiability:
				totals.TotalLiabilities = totals.TotalLiabilities.Add(amount.Neg())
			case domain.AccountTypeLiabilityContra:
				totals.TotalLiabilities = totals.TotalLiabilities.Sub(amount)
			case domain.AccountTypeEquity:
				totals.TotalEquity = totals.TotalEquity.Add(amount.Neg())
			case domain.AccountTypeEquityContra:
				totals.TotalEquity = totals.TotalEquity.Sub(amount)
			case domain.AccountTypeRevenue:
				totals.TotalRevenue = totals.TotalRevenue.Add(amount.Neg())
			case domain.AccountTypeRevenueContra:
				totals.TotalRevenue = totals.TotalRevenue.Sub(amount)
			case domain.AccountTypeExpense:
				totals.TotalExpenses = totals.TotalExpenses.Add(amount)
			}
		}
	}

	totals.NetIncome = totals.TotalRevenue.Sub(totals.TotalExpenses)
	totals.AssetsLiabilitiesEquity = totals.TotalAssets.Sub(totals.TotalLiabilities).Sub(totals.TotalEquity)

	return totals
}

// ExportCSV renders the chart as tabular rows: one header, then per
// type-group a summary row followed by depth-indented account rows,
// with a blank separator row between groups.
func (uc *ChartUseCase) ExportCSV(chart *ChartStructure) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	asOf := ""
	if chart.AsOf != nil {
		asOf = chart.AsOf.Format("2006-01-02")
	}

	if err := w.Write([]string{"Type", "Code", "Account Name", "Direct Balance", "Rollup Balance", "As Of Date"}); err != nil {
		return nil, err
	}

	for i, group := range chart.Groups {
		if i > 0 {
			if err := w.Write([]string{"", "", "", "", "", ""}); err != nil {
				return nil, err
			}
		}

		if err := w.Write([]string{string(group.Type), "", "", "", group.Total.StringFixed(2), asOf}); err != nil {
			return nil, err
		}

		for _, node := range group.Accounts {
			if err := writeAccountRows(w, node, group.Type, asOf); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeAccountRows(w *csv.Writer, node *ChartAccount, accountType domain.AccountType, asOf string) error {
	indent := strings.Repeat("  ", node.Depth)

	row := []string{
		string(accountType),
		node.Account.Code,
		indent + node.Account.Name,
		node.Balance.StringFixed(2),
		node.RollupBalance.StringFixed(2),
		asOf,
	}

	if err := w.Write(row); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := writeAccountRows(w, child, accountType, asOf); err != nil {
			return err
		}
	}

	return nil
}
