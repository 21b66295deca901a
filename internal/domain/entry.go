package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side selects which column of a line carries the amount.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

// LedgerEntry is one atomic, immutable transaction record composed of
// two or more balanced lines. Entries are never edited; mistakes are
// corrected by posting an offsetting entry.
type LedgerEntry struct {
	ID              string
	TransactionType string
	ReferenceType   string
	ReferenceID     string
	OccurredAt      time.Time
	Metadata        map[string]any
	Lines           []*LedgerEntryLine
	CreatedAt       time.Time
}

// LedgerEntryLine is a single debit or credit movement against one
// account within an entry. Exactly one of Debit/Credit is positive,
// the other is zero.
type LedgerEntryLine struct {
	ID        string
	EntryID   string
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string
}

// Amount returns the line's magnitude regardless of side.
func (l *LedgerEntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}

	return l.Credit
}

// Side returns which column the line posts to.
func (l *LedgerEntryLine) Side() Side {
	if l.Debit.IsPositive() {
		return SideDebit
	}

	return SideCredit
}

// Validate checks the one-sided positive-amount invariant.
func (l *LedgerEntryLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrInvalidAmount
	}

	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()

	if debitSet == creditSet {
		return ErrInvalidLine
	}

	return nil
}

// Validate checks entry-level invariants: at least two lines, each line
// valid, and total debits exactly equal to total credits.
func (e *LedgerEntry) Validate() error {
	if len(e.Lines) < 2 {
		return ErrInvalidLine
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for _, line := range e.Lines {
		if err := line.Validate(); err != nil {
			return err
		}

		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return ErrUnbalancedEntry
	}

	return nil
}

// TotalDebit sums the debit column across lines.
func (e *LedgerEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}

	return total
}

// TotalCredit sums the credit column across lines.
func (e *LedgerEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}

	return total
}
