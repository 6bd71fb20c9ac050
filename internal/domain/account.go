package domain

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var accountIDPattern = regexp.MustCompile(`^\d{5}-\d{5}$`)

// Account represents a ledger account that holds a balance.
type Account struct {
	ID      string
	Balance decimal.Decimal
}

// IsCanonicalAccountID reports whether id has the NNNNN-NNNNN form.
func IsCanonicalAccountID(id string) bool {
	return accountIDPattern.MatchString(id)
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
