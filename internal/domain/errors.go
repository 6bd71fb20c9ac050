package domain

import "errors"

var (
	// Record errors, reported verbatim in the operation report
	ErrSenderMissing       = errors.New("sender account not specified")
	ErrRecipientMissing    = errors.New("recipient account not specified")
	ErrAmountMissing       = errors.New("amount not specified")
	ErrAmountEmpty         = errors.New("empty amount")
	ErrMalformedSender     = errors.New("malformed sender account")
	ErrMalformedRecipient  = errors.New("malformed recipient account")
	ErrSameAccount         = errors.New("cannot transfer to the same account")
	ErrInvalidAmountFormat = errors.New("invalid amount format")
	ErrInvalidAmount       = errors.New("invalid transfer amount")

	// Ledger errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Report errors
	ErrInvalidDate    = errors.New("invalid date format, use yyyy-MM-dd")
	ErrReportNotFound = errors.New("report file not found")
)

// RecordError describes why a raw record was rejected.
type RecordError struct {
	Err    error
	Detail string
}

func (e *RecordError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
