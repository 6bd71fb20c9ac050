package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Report timestamp layouts.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// recordCheck inspects a raw record and returns a non-nil error when it fails.
type recordCheck func(r RawRecord) error

// recordChecks run in order; the first failure is the one reported.
var recordChecks = []recordCheck{
	checkPresent(FieldFrom, ErrSenderMissing),
	checkPresent(FieldTo, ErrRecipientMissing),
	checkAmountPresent,
	checkAccountFormat(FieldFrom, ErrMalformedSender),
	checkAccountFormat(FieldTo, ErrMalformedRecipient),
	checkDistinctAccounts,
	checkAmountFormat,
	checkAmountPositive,
}

func checkPresent(f Field, missing error) recordCheck {
	return func(r RawRecord) error {
		if _, ok := r.Lookup(f); !ok {
			return &RecordError{Err: missing}
		}
		return nil
	}
}

func checkAmountPresent(r RawRecord) error {
	amount, ok := r.Lookup(FieldAmount)
	if !ok {
		return &RecordError{Err: ErrAmountMissing}
	}
	if strings.TrimSpace(amount) == "" {
		return &RecordError{Err: ErrAmountEmpty}
	}
	return nil
}

func checkAccountFormat(f Field, malformed error) recordCheck {
	return func(r RawRecord) error {
		if id := r[f]; !IsCanonicalAccountID(id) {
			return &RecordError{Err: malformed, Detail: id}
		}
		return nil
	}
}

func checkDistinctAccounts(r RawRecord) error {
	if r[FieldFrom] == r[FieldTo] {
		return &RecordError{Err: ErrSameAccount, Detail: r[FieldFrom]}
	}
	return nil
}

func checkAmountFormat(r RawRecord) error {
	raw := strings.TrimSpace(r[FieldAmount])
	if _, err := decimal.NewFromString(raw); err != nil {
		return &RecordError{Err: ErrInvalidAmountFormat, Detail: raw}
	}
	return nil
}

func checkAmountPositive(r RawRecord) error {
	amount := decimal.RequireFromString(strings.TrimSpace(r[FieldAmount]))
	if !amount.IsPositive() {
		return &RecordError{Err: ErrInvalidAmount, Detail: amount.String()}
	}
	return nil
}

// ValidateRecord runs the record checks in order and returns the first failure.
func ValidateRecord(r RawRecord) error {
	for _, check := range recordChecks {
		if err := check(r); err != nil {
			return err
		}
	}
	return nil
}

// BuildTransaction converts a raw record into a Transaction. When the record is
// invalid the transaction is still returned, with NotSpecified for missing
// account ids and a best-effort amount, so the rejection can be reported.
func BuildTransaction(r RawRecord, filename string, at time.Time) (Transaction, error) {
	tx := Transaction{
		FromAccountID: valueOr(r, FieldFrom, NotSpecified),
		ToAccountID:   valueOr(r, FieldTo, NotSpecified),
		Amount:        parseAmountOrZero(r),
		Filename:      filename,
		Timestamp:     at,
	}

	if err := ValidateRecord(r); err != nil {
		return tx, err
	}

	return tx, nil
}

func valueOr(r RawRecord, f Field, fallback string) string {
	if v, ok := r.Lookup(f); ok {
		return v
	}
	return fallback
}

func parseAmountOrZero(r RawRecord) decimal.Decimal {
	raw, ok := r.Lookup(FieldAmount)
	if !ok {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ParseReportDate parses a yyyy-MM-dd date.
func ParseReportDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &RecordError{Err: ErrInvalidDate, Detail: s}
	}
	return t, nil
}

// DayBounds returns the first and last second of the range [startDate, endDate]
// as the report timestamps are compared against.
func DayBounds(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(TimestampLayout, startDate+" 00:00:00")
	if err != nil {
		return time.Time{}, time.Time{}, &RecordError{Err: ErrInvalidDate, Detail: startDate}
	}

	end, err := time.Parse(TimestampLayout, endDate+" 23:59:59")
	if err != nil {
		return time.Time{}, time.Time{}, &RecordError{Err: ErrInvalidDate, Detail: endDate}
	}

	return start, end, nil
}
