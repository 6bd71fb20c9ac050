package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  RawRecord
		wantErr error
		wantMsg string
	}{
		{
			name:    "valid record",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "100"},
			wantErr: nil,
		},
		{
			name:    "missing sender wins over missing recipient",
			record:  RawRecord{FieldAmount: "100"},
			wantErr: ErrSenderMissing,
			wantMsg: "sender account not specified",
		},
		{
			name:    "missing recipient",
			record:  RawRecord{FieldFrom: "11111-11111", FieldAmount: "100"},
			wantErr: ErrRecipientMissing,
			wantMsg: "recipient account not specified",
		},
		{
			name:    "missing amount",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222"},
			wantErr: ErrAmountMissing,
			wantMsg: "amount not specified",
		},
		{
			name:    "blank amount",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "   "},
			wantErr: ErrAmountEmpty,
			wantMsg: "empty amount",
		},
		{
			name:    "malformed sender",
			record:  RawRecord{FieldFrom: "abc", FieldTo: "22222-22222", FieldAmount: "10"},
			wantErr: ErrMalformedSender,
			wantMsg: "malformed sender account: abc",
		},
		{
			name:    "malformed recipient checked after sender",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "2222", FieldAmount: "oops"},
			wantErr: ErrMalformedRecipient,
			wantMsg: "malformed recipient account: 2222",
		},
		{
			name:    "self transfer",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "11111-11111", FieldAmount: "10"},
			wantErr: ErrSameAccount,
			wantMsg: "cannot transfer to the same account: 11111-11111",
		},
		{
			name:    "amount not a number",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "ten"},
			wantErr: ErrInvalidAmountFormat,
			wantMsg: "invalid amount format: ten",
		},
		{
			name:    "zero amount",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "0"},
			wantErr: ErrInvalidAmount,
			wantMsg: "invalid transfer amount: 0",
		},
		{
			name:    "negative amount",
			record:  RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "-5.5"},
			wantErr: ErrInvalidAmount,
			wantMsg: "invalid transfer amount: -5.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if err.Error() != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestBuildTransaction(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	t.Run("valid record", func(t *testing.T) {
		tx, err := BuildTransaction(RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "100.25"}, "in.txt", at)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if tx.FromAccountID != "11111-11111" || tx.ToAccountID != "22222-22222" {
			t.Fatalf("unexpected accounts: %+v", tx)
		}

		if !tx.Amount.Equal(decimal.RequireFromString("100.25")) {
			t.Fatalf("expected amount 100.25, got %s", tx.Amount)
		}

		if tx.Filename != "in.txt" || !tx.Timestamp.Equal(at) {
			t.Fatalf("unexpected provenance: %+v", tx)
		}
	})

	t.Run("missing fields use placeholders", func(t *testing.T) {
		tx, err := BuildTransaction(RawRecord{FieldAmount: "42"}, "in.txt", at)
		if !errors.Is(err, ErrSenderMissing) {
			t.Fatalf("expected ErrSenderMissing, got %v", err)
		}

		if tx.FromAccountID != NotSpecified || tx.ToAccountID != NotSpecified {
			t.Fatalf("expected placeholders, got %+v", tx)
		}

		if !tx.Amount.Equal(decimal.NewFromInt(42)) {
			t.Fatalf("expected best-effort amount 42, got %s", tx.Amount)
		}
	})

	t.Run("malformed sender keeps literal id", func(t *testing.T) {
		tx, err := BuildTransaction(RawRecord{FieldFrom: "abc", FieldTo: "22222-22222", FieldAmount: "10"}, "in.txt", at)
		if err == nil || err.Error() != "malformed sender account: abc" {
			t.Fatalf("unexpected error: %v", err)
		}

		if tx.FromAccountID != "abc" {
			t.Fatalf("expected from=abc, got %q", tx.FromAccountID)
		}
	})

	t.Run("unparseable amount becomes zero", func(t *testing.T) {
		tx, err := BuildTransaction(RawRecord{FieldFrom: "11111-11111", FieldTo: "22222-22222", FieldAmount: "lots"}, "in.txt", at)
		if !errors.Is(err, ErrInvalidAmountFormat) {
			t.Fatalf("expected ErrInvalidAmountFormat, got %v", err)
		}

		if !tx.Amount.IsZero() {
			t.Fatalf("expected zero amount, got %s", tx.Amount)
		}
	})
}

func TestDayBounds(t *testing.T) {
	t.Parallel()

	start, end, err := DayBounds("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := start.Format(TimestampLayout); got != "2024-01-01 00:00:00" {
		t.Fatalf("unexpected start %s", got)
	}

	if got := end.Format(TimestampLayout); got != "2024-01-31 23:59:59" {
		t.Fatalf("unexpected end %s", got)
	}

	if _, _, err := DayBounds("2024-13-01", "2024-01-31"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for bad start, got %v", err)
	}

	if _, _, err := DayBounds("2024-01-01", "31.01.2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for bad end, got %v", err)
	}
}

func TestParseReportDate(t *testing.T) {
	t.Parallel()

	if _, err := ParseReportDate("2024-02-29"); err != nil {
		t.Fatalf("expected leap day to parse, got %v", err)
	}

	for _, bad := range []string{"", "2024-1-5", "2023-02-29", "yesterday"} {
		if _, err := ParseReportDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}
