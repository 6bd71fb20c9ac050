package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			expectError: false,
		},
		{
			name:        "fractional overdraft",
			balance:     decimal.RequireFromString("10.50"),
			debitAmount: decimal.RequireFromString("10.51"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDebit(tt.debitAmount)

			if tt.expectError && err != ErrInsufficientFunds {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDebitCredit(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	if got := acc.ApplyDebit(decimal.NewFromInt(30)); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected 70, got %s", got)
	}

	if got := acc.ApplyCredit(decimal.NewFromInt(30)); !got.Equal(decimal.NewFromInt(130)) {
		t.Errorf("expected 130, got %s", got)
	}
}

func TestIsCanonicalAccountID(t *testing.T) {
	valid := []string{"11111-11111", "00000-99999"}
	invalid := []string{"abc", "1111-11111", "11111-111111", "11111_11111", " 11111-11111", ""}

	for _, id := range valid {
		if !IsCanonicalAccountID(id) {
			t.Errorf("expected %q to be canonical", id)
		}
	}

	for _, id := range invalid {
		if IsCanonicalAccountID(id) {
			t.Errorf("expected %q to be rejected", id)
		}
	}
}
