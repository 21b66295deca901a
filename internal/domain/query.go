package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryFilter narrows ledger entry queries. Zero-valued fields are
// ignored.
type EntryFilter struct {
	AccountID       string
	TransactionType string
	ReferenceType   string
	ReferenceID     string
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
}

// TrialBalanceRow is one account's debit/credit totals as of a date.
type TrialBalanceRow struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType AccountType
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}
