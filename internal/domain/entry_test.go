package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedgerEntryLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    LedgerEntryLine
		wantErr error
	}{
		{
			name: "debit only",
			line: LedgerEntryLine{AccountID: "a", Debit: d("100")},
		},
		{
			name: "credit only",
			line: LedgerEntryLine{AccountID: "a", Credit: d("100")},
		},
		{
			name:    "both sides set",
			line:    LedgerEntryLine{AccountID: "a", Debit: d("100"), Credit: d("100")},
			wantErr: ErrInvalidLine,
		},
		{
			name:    "neither side set",
			line:    LedgerEntryLine{AccountID: "a"},
			wantErr: ErrInvalidLine,
		},
		{
			name:    "negative debit",
			line:    LedgerEntryLine{AccountID: "a", Debit: d("-5")},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLedgerEntryLine_SideAndAmount(t *testing.T) {
	debit := LedgerEntryLine{Debit: d("25.50")}
	if debit.Side() != SideDebit {
		t.Errorf("Side() = %s, want debit", debit.Side())
	}
	if !debit.Amount().Equal(d("25.50")) {
		t.Errorf("Amount() = %s, want 25.50", debit.Amount())
	}

	credit := LedgerEntryLine{Credit: d("25.50")}
	if credit.Side() != SideCredit {
		t.Errorf("Side() = %s, want credit", credit.Side())
	}
}

func TestLedgerEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lines   []*LedgerEntryLine
		wantErr error
	}{
		{
			name: "balanced entry",
			lines: []*LedgerEntryLine{
				{AccountID: "cash", Debit: d("108.00")},
				{AccountID: "sales", Credit: d("100.00")},
				{AccountID: "tax", Credit: d("8.00")},
			},
		},
		{
			name: "unbalanced entry",
			lines: []*LedgerEntryLine{
				{AccountID: "cash", Debit: d("100.00")},
				{AccountID: "sales", Credit: d("90.00")},
			},
			wantErr: ErrUnbalancedEntry,
		},
		{
			name: "single line",
			lines: []*LedgerEntryLine{
				{AccountID: "cash", Debit: d("100.00")},
			},
			wantErr: ErrInvalidLine,
		},
		{
			name: "invalid line inside entry",
			lines: []*LedgerEntryLine{
				{AccountID: "cash", Debit: d("100.00"), Credit: d("100.00")},
				{AccountID: "sales", Credit: d("100.00")},
			},
			wantErr: ErrInvalidLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := LedgerEntry{ID: "e1", Lines: tt.lines}

			err := entry.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLedgerEntry_Totals(t *testing.T) {
	entry := LedgerEntry{Lines: []*LedgerEntryLine{
		{Debit: d("88.00")},
		{Credit: d("80.00")},
		{Credit: d("8.00")},
	}}

	if !entry.TotalDebit().Equal(d("88.00")) {
		t.Errorf("TotalDebit() = %s, want 88.00", entry.TotalDebit())
	}

	if !entry.TotalCredit().Equal(d("88.00")) {
		t.Errorf("TotalCredit() = %s, want 88.00", entry.TotalCredit())
	}
}
