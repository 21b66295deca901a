package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountType_Valid(t *testing.T) {
	for _, known := range AccountTypeOrder {
		if !known.Valid() {
			t.Errorf("expected %q to be valid", known)
		}
	}

	if AccountType("goodwill").Valid() {
		t.Error("expected unknown type to be invalid")
	}
}

func TestAccountType_DebitNormal(t *testing.T) {
	tests := []struct {
		accountType AccountType
		debitNormal bool
	}{
		{AccountTypeAsset, true},
		{AccountTypeAssetContra, false},
		{AccountTypeExpense, true},
		{AccountTypeLiability, false},
		{AccountTypeLiabilityContra, true},
		{AccountTypeEquity, false},
		{AccountTypeEquityContra, true},
		{AccountTypeRevenue, false},
		{AccountTypeRevenueContra, true},
	}

	for _, tt := range tests {
		if got := tt.accountType.DebitNormal(); got != tt.debitNormal {
			t.Errorf("%s: DebitNormal() = %v, want %v", tt.accountType, got, tt.debitNormal)
		}
	}
}

func TestAccountType_IsContra(t *testing.T) {
	contra := []AccountType{
		AccountTypeAssetContra,
		AccountTypeLiabilityContra,
		AccountTypeEquityContra,
		AccountTypeRevenueContra,
	}

	for _, ct := range contra {
		if !ct.IsContra() {
			t.Errorf("expected %q to be contra", ct)
		}
	}

	if AccountTypeAsset.IsContra() {
		t.Error("asset should not be contra")
	}
}

func TestAccount_Validate(t *testing.T) {
	self := "acc-1"

	tests := []struct {
		name        string
		account     Account
		expectError bool
	}{
		{
			name:    "valid account",
			account: Account{ID: "acc-1", Code: "1000", Name: "Cash", Type: AccountTypeAsset},
		},
		{
			name:        "empty code",
			account:     Account{ID: "acc-1", Code: "", Name: "Cash", Type: AccountTypeAsset},
			expectError: true,
		},
		{
			name:        "non-numeric code",
			account:     Account{ID: "acc-1", Code: "CASH", Name: "Cash", Type: AccountTypeAsset},
			expectError: true,
		},
		{
			name:        "unknown type",
			account:     Account{ID: "acc-1", Code: "1000", Name: "Cash", Type: "chattel"},
			expectError: true,
		},
		{
			name:        "self parent",
			account:     Account{ID: "acc-1", Code: "1000", Name: "Cash", Type: AccountTypeAsset, ParentID: &self},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		accountType AccountType
		abnormal    bool
	}{
		{"asset positive is normal", "100", AccountTypeAsset, false},
		{"asset negative is abnormal", "-100", AccountTypeAsset, true},
		{"liability negative is normal", "-100", AccountTypeLiability, false},
		{"liability positive is abnormal", "100", AccountTypeLiability, true},
		{"revenue negative is normal", "-80", AccountTypeRevenue, false},
		{"contra revenue positive is normal", "20", AccountTypeRevenueContra, false},
		{"contra asset negative is normal", "-50", AccountTypeAssetContra, false},
		{"expense positive is normal", "30", AccountTypeExpense, false},
		{"zero is never abnormal", "0", AccountTypeAsset, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := decimal.RequireFromString(tt.balance)

			display := FormatBalance(balance, tt.accountType)

			if display.IsNegativeDisplay != tt.abnormal {
				t.Errorf("IsNegativeDisplay = %v, want %v", display.IsNegativeDisplay, tt.abnormal)
			}

			if !display.Value.Equal(balance.Abs()) {
				t.Errorf("Value = %s, want %s", display.Value, balance.Abs())
			}

			if display.Sign != balance.Sign() {
				t.Errorf("Sign = %d, want %d", display.Sign, balance.Sign())
			}
		})
	}
}
