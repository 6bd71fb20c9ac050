package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotSpecified replaces account ids missing from a rejected record.
const NotSpecified = "NOT_SPECIFIED"

// Field names a directive recognised in an instruction file.
type Field string

const (
	FieldFrom   Field = "from"
	FieldTo     Field = "to"
	FieldAmount Field = "amount"
)

// RawRecord is one blank-line delimited group of directives as read from a file.
// Only keys that were present in the group are set.
type RawRecord map[Field]string

// Lookup returns the value of f and whether it was present.
func (r RawRecord) Lookup(f Field) (string, bool) {
	v, ok := r[f]
	return v, ok
}

// Transaction is a transfer instruction built from a RawRecord.
type Transaction struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Filename      string
	Timestamp     time.Time
}
