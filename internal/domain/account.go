package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account within the chart of accounts.
type AccountType string

const (
	AccountTypeAsset           AccountType = "asset"
	AccountTypeAssetContra     AccountType = "asset_contra"
	AccountTypeLiability       AccountType = "liability"
	AccountTypeLiabilityContra AccountType = "liability_contra"
	AccountTypeEquity          AccountType = "equity"
	AccountTypeEquityContra    AccountType = "equity_contra"
	AccountTypeRevenue         AccountType = "revenue"
	AccountTypeRevenueContra   AccountType = "revenue_contra"
	AccountTypeExpense         AccountType = "expense"
)

// AccountTypeOrder is the fixed display order for chart grouping.
var AccountTypeOrder = []AccountType{
	AccountTypeAsset,
	AccountTypeAssetContra,
	AccountTypeLiability,
	AccountTypeLiabilityContra,
	AccountTypeEquity,
	AccountTypeEquityContra,
	AccountTypeRevenue,
	AccountTypeRevenueContra,
	AccountTypeExpense,
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypeOrder {
		if t == known {
			return true
		}
	}

	return false
}

// IsContra reports whether t reduces its type family's total.
func (t AccountType) IsContra() bool {
	switch t {
	case AccountTypeAssetContra, AccountTypeLiabilityContra, AccountTypeEquityContra, AccountTypeRevenueContra:
		return true
	}

	return false
}

// DebitNormal reports whether a non-negative balance (debits exceed
// credits) is the normal state for t. Contra types flip the family's
// convention.
func (t AccountType) DebitNormal() bool {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return true
	case AccountTypeAssetContra:
		return false
	case AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue:
		return false
	case AccountTypeLiabilityContra, AccountTypeEquityContra, AccountTypeRevenueContra:
		return true
	}

	return true
}

// Account is one node in the chart of accounts. Accounts are created at
// chart setup and never deleted once a line references them.
type Account struct {
	ID        string
	Code      string
	Name      string
	Type      AccountType
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants at creation time.
func (a *Account) Validate() error {
	if err := ValidateAccountCode(a.Code); err != nil {
		return err
	}

	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}

	if a.ParentID != nil && *a.ParentID == a.ID {
		return ErrAccountCycle
	}

	return nil
}

// BalanceDisplay is the sign convention applied to a balance for
// presentation. Abnormal balances are flagged for highlighting only;
// posting never consults this.
type BalanceDisplay struct {
	Value             decimal.Decimal
	Sign              int
	IsNegativeDisplay bool
}

// FormatBalance maps a raw balance (sum of debits minus credits) to its
// display convention for t.
func FormatBalance(balance decimal.Decimal, t AccountType) BalanceDisplay {
	display := BalanceDisplay{Value: balance.Abs(), Sign: balance.Sign()}

	if t.DebitNormal() {
		display.IsNegativeDisplay = balance.IsNegative()
	} else {
		display.IsNegativeDisplay = balance.IsPositive()
	}

	return display
}
