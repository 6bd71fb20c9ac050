// Package ledger holds account balances in memory for the duration of a run.
package ledger

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbatch/internal/domain"
)

// Ledger maps account ids to balances. A single mutex serialises every
// operation so a transfer is never observed half applied.
type Ledger struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

// New creates a ledger seeded with accounts. Later duplicates replace earlier ones.
func New(accounts ...domain.Account) *Ledger {
	l := &Ledger{accounts: make(map[string]*domain.Account, len(accounts))}
	for _, a := range accounts {
		acc := a
		l.accounts[acc.ID] = &acc
	}
	return l
}

// getOrCreate must be called with mu held.
func (l *Ledger) getOrCreate(id string) *domain.Account {
	acc, ok := l.accounts[id]
	if !ok {
		acc = &domain.Account{ID: id, Balance: decimal.Zero}
		l.accounts[id] = acc
	}
	return acc
}

// GetOrCreate returns a snapshot of the account, creating it with a zero
// balance when it is unknown.
func (l *Ledger) GetOrCreate(id string) domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	return *l.getOrCreate(id)
}

// Balance returns the balance of id and whether the account exists.
func (l *Ledger) Balance(id string) (decimal.Decimal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[id]
	if !ok {
		return decimal.Zero, false
	}
	return acc.Balance, true
}

// Transfer moves amount from one account to another. Both accounts are
// created if unknown, even when the transfer is then rejected. Nothing is
// changed when the source balance is lower than amount.
func (l *Ledger) Transfer(fromID, toID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if fromID == toID {
		return domain.ErrSameAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	from := l.getOrCreate(fromID)
	to := l.getOrCreate(toID)

	if err := from.ValidateDebit(amount); err != nil {
		return err
	}

	from.Balance = from.ApplyDebit(amount)
	to.Balance = to.ApplyCredit(amount)

	return nil
}

// List returns a snapshot of all accounts ordered by id.
func (l *Ledger) List() []domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Account, 0, len(l.accounts))
	for _, acc := range l.accounts {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Len returns the number of known accounts.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.accounts)
}
