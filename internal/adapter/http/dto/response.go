package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tavola/ledger/internal/domain"
	"github.com/tavola/ledger/internal/journal"
	"github.com/tavola/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		ParentID:  a.ParentID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryLineResponse is one debit or credit line in an entry response.
type EntryLineResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string               `json:"id"`
	TransactionType string               `json:"transaction_type"`
	ReferenceType   string               `json:"reference_type,omitempty"`
	ReferenceID     string               `json:"reference_id,omitempty"`
	OccurredAt      time.Time            `json:"occurred_at"`
	Metadata        map[string]any       `json:"metadata,omitempty"`
	Lines           []*EntryLineResponse `json:"lines"`
	CreatedAt       time.Time            `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	lines := make([]*EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = &EntryLineResponse{
			ID:        l.ID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		}
	}

	return &EntryResponse{
		ID:              e.ID,
		TransactionType: e.TransactionType,
		ReferenceType:   e.ReferenceType,
		ReferenceID:     e.ReferenceID,
		OccurredAt:      e.OccurredAt,
		Metadata:        e.Metadata,
		Lines:           lines,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// BalanceResponse reports one account's balance. Balance is the raw
// debits-minus-credits figure; DisplayValue applies the account type's
// sign convention, with Abnormal set when the balance sits on the
// wrong side for that type.
type BalanceResponse struct {
	AccountID    string          `json:"account_id"`
	AccountCode  string          `json:"account_code"`
	AccountName  string          `json:"account_name"`
	AccountType  string          `json:"account_type"`
	Balance      decimal.Decimal `json:"balance"`
	DisplayValue decimal.Decimal `json:"display_value"`
	Abnormal     bool            `json:"abnormal"`
	AsOf         *time.Time      `json:"as_of,omitempty"`
}

// BalanceFromDomain builds a balance response for an account.
func BalanceFromDomain(a *domain.Account, balance decimal.Decimal, asOf *time.Time) *BalanceResponse {
	display := domain.FormatBalance(balance, a.Type)

	return &BalanceResponse{
		AccountID:    a.ID,
		AccountCode:  a.Code,
		AccountName:  a.Name,
		AccountType:  string(a.Type),
		Balance:      balance,
		DisplayValue: display.Value,
		Abnormal:     display.IsNegativeDisplay,
		AsOf:         asOf,
	}
}

// TrialBalanceRowResponse is one account's totals in a trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
}

// TrialBalanceResponse represents a trial balance report.
type TrialBalanceResponse struct {
	Date        time.Time                 `json:"date"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"total_debit"`
	TotalCredit decimal.Decimal           `json:"total_credit"`
	Balanced    bool                      `json:"balanced"`
}

// TrialBalanceFromUseCase converts a trial balance to a response.
func TrialBalanceFromUseCase(tb *usecase.TrialBalance) *TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			DebitTotal:  row.DebitTotal,
			CreditTotal: row.CreditTotal,
		}
	}

	return &TrialBalanceResponse{
		Date:        tb.Date,
		Rows:        rows,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
		Balanced:    tb.TotalDebit.Equal(tb.TotalCredit),
	}
}

// ChartAccountResponse is one node in the chart-of-accounts tree.
type ChartAccountResponse struct {
	ID            string                  `json:"id"`
	Code          string                  `json:"code"`
	Name          string                  `json:"name"`
	Type          string                  `json:"type"`
	Depth         int                     `json:"depth"`
	Balance       decimal.Decimal         `json:"balance"`
	RollupBalance decimal.Decimal         `json:"rollup_balance"`
	Children      []*ChartAccountResponse `json:"children,omitempty"`
}

// ChartGroupResponse is one account type family in the chart.
type ChartGroupResponse struct {
	Type     string                  `json:"type"`
	Total    decimal.Decimal         `json:"total"`
	Accounts []*ChartAccountResponse `json:"accounts"`
}

// ChartResponse represents the full chart of accounts with balances.
type ChartResponse struct {
	AsOf   *time.Time            `json:"as_of,omitempty"`
	Groups []*ChartGroupResponse `json:"groups"`
}

func chartAccountFromUseCase(a *usecase.ChartAccount) *ChartAccountResponse {
	resp := &ChartAccountResponse{
		ID:            a.Account.ID,
		Code:          a.Account.Code,
		Name:          a.Account.Name,
		Type:          string(a.Account.Type),
		Depth:         a.Depth,
		Balance:       a.Balance,
		RollupBalance: a.RollupBalance,
	}

	for _, child := range a.Children {
		resp.Children = append(resp.Children, chartAccountFromUseCase(child))
	}

	return resp
}

// ChartFromUseCase converts a chart structure to a response.
func ChartFromUseCase(chart *usecase.ChartStructure) *ChartResponse {
	groups := make([]*ChartGroupResponse, len(chart.Groups))
	for i, g := range chart.Groups {
		accounts := make([]*ChartAccountResponse, len(g.Accounts))
		for j, a := range g.Accounts {
			accounts[j] = chartAccountFromUseCase(a)
		}
		groups[i] = &ChartGroupResponse{
			Type:     string(g.Type),
			Total:    g.Total,
			Accounts: accounts,
		}
	}

	return &ChartResponse{AsOf: chart.AsOf, Groups: groups}
}

// ChartTotalsResponse reports per-family totals and the accounting
// equation figures.
type ChartTotalsResponse struct {
	TotalAssets             decimal.Decimal `json:"total_assets"`
	TotalLiabilities        decimal.Decimal `json:"total_liabilities"`
	TotalEquity             decimal.Decimal `json:"total_equity"`
	TotalRevenue            decimal.Decimal `json:"total_revenue"`
	TotalExpenses           decimal.Decimal `json:"total_expenses"`
	NetIncome               decimal.Decimal `json:"net_income"`
	AssetsLiabilitiesEquity decimal.Decimal `json:"assets_liabilities_equity"`
}

// ChartTotalsFromUseCase converts chart totals to a response.
func ChartTotalsFromUseCase(totals usecase.ChartTotals) *ChartTotalsResponse {
	return &ChartTotalsResponse{
		TotalAssets:             totals.TotalAssets,
		TotalLiabilities:        totals.TotalLiabilities,
		TotalEquity:             totals.TotalEquity,
		TotalRevenue:            totals.TotalRevenue,
		TotalExpenses:           totals.TotalExpenses,
		NetIncome:               totals.NetIncome,
		AssetsLiabilitiesEquity: totals.AssetsLiabilitiesEquity,
	}
}

// TemplateRuleResponse is one posting rule in a template response.
type TemplateRuleResponse struct {
	Account string `json:"account"`
	Side    string `json:"side"`
	Expr    string `json:"expr"`
	When    string `json:"when,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// TemplateResponse represents a journal event template.
type TemplateResponse struct {
	Name            string                 `json:"name"`
	TransactionType string                 `json:"transaction_type"`
	Rules           []TemplateRuleResponse `json:"rules"`
}

// TemplateFromCatalog converts a catalog template to a response.
func TemplateFromCatalog(tpl *journal.Template) *TemplateResponse {
	rules := make([]TemplateRuleResponse, len(tpl.Rules))
	for i, rule := range tpl.Rules {
		rules[i] = TemplateRuleResponse{
			Account: rule.AccountKey,
			Side:    string(rule.Side),
			Expr:    rule.Expr,
			When:    rule.When,
			Memo:    rule.Memo,
		}
	}

	return &TemplateResponse{
		Name:            tpl.Name,
		TransactionType: tpl.TransactionType,
		Rules:           rules,
	}
}

// ConsistencyResponse reports the system-wide debit/credit check.
type ConsistencyResponse struct {
	Consistent bool `json:"consistent"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
