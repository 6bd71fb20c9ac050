package ledger

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgerbatch/internal/domain"
)

func seeded() *Ledger {
	return New(
		domain.Account{ID: "11111-11111", Balance: decimal.NewFromInt(500)},
		domain.Account{ID: "22222-22222", Balance: decimal.Zero},
	)
}

func balance(t *testing.T, l *Ledger, id string) decimal.Decimal {
	t.Helper()
	b, ok := l.Balance(id)
	require.True(t, ok, "account %s should exist", id)
	return b
}

func TestTransfer(t *testing.T) {
	l := seeded()

	require.NoError(t, l.Transfer("11111-11111", "22222-22222", decimal.NewFromInt(100)))
	assert.True(t, balance(t, l, "11111-11111").Equal(decimal.NewFromInt(400)))
	assert.True(t, balance(t, l, "22222-22222").Equal(decimal.NewFromInt(100)))

	err := l.Transfer("11111-11111", "22222-22222", decimal.NewFromInt(99999))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, balance(t, l, "11111-11111").Equal(decimal.NewFromInt(400)))
	assert.True(t, balance(t, l, "22222-22222").Equal(decimal.NewFromInt(100)))
}

func TestTransferConservesTotal(t *testing.T) {
	amounts := []string{"0.01", "1", "250.75", "400", "500"}

	for _, raw := range amounts {
		t.Run(raw, func(t *testing.T) {
			l := seeded()
			amount := decimal.RequireFromString(raw)
			before := balance(t, l, "11111-11111").Add(balance(t, l, "22222-22222"))

			require.NoError(t, l.Transfer("11111-11111", "22222-22222", amount))

			from := balance(t, l, "11111-11111")
			to := balance(t, l, "22222-22222")
			assert.True(t, from.Equal(decimal.NewFromInt(500).Sub(amount)))
			assert.True(t, to.Equal(amount))
			assert.True(t, from.Add(to).Equal(before))
		})
	}
}

func TestTransferExactBalance(t *testing.T) {
	l := seeded()

	require.NoError(t, l.Transfer("11111-11111", "22222-22222", decimal.NewFromInt(500)))
	assert.True(t, balance(t, l, "11111-11111").IsZero())
}

func TestTransferCreatesUnknownAccounts(t *testing.T) {
	l := New()

	err := l.Transfer("33333-33333", "44444-44444", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, 2, l.Len())
	assert.True(t, balance(t, l, "33333-33333").IsZero())
	assert.True(t, balance(t, l, "44444-44444").IsZero())
}

func TestTransferRejectsBadInput(t *testing.T) {
	l := seeded()

	assert.ErrorIs(t, l.Transfer("11111-11111", "22222-22222", decimal.Zero), domain.ErrInvalidAmount)
	assert.ErrorIs(t, l.Transfer("11111-11111", "22222-22222", decimal.NewFromInt(-1)), domain.ErrInvalidAmount)
	assert.ErrorIs(t, l.Transfer("11111-11111", "11111-11111", decimal.NewFromInt(1)), domain.ErrSameAccount)
	assert.True(t, balance(t, l, "11111-11111").Equal(decimal.NewFromInt(500)))
}

func TestGetOrCreate(t *testing.T) {
	l := seeded()

	existing := l.GetOrCreate("11111-11111")
	assert.True(t, existing.Balance.Equal(decimal.NewFromInt(500)))

	created := l.GetOrCreate("55555-55555")
	assert.Equal(t, "55555-55555", created.ID)
	assert.True(t, created.Balance.IsZero())
	assert.Equal(t, 3, l.Len())

	// snapshots are copies
	created.Balance = decimal.NewFromInt(1000)
	assert.True(t, balance(t, l, "55555-55555").IsZero())
}

func TestListSortedByID(t *testing.T) {
	l := New(
		domain.Account{ID: "33333-33333", Balance: decimal.NewFromInt(3)},
		domain.Account{ID: "11111-11111", Balance: decimal.NewFromInt(1)},
		domain.Account{ID: "22222-22222", Balance: decimal.NewFromInt(2)},
	)

	accounts := l.List()
	require.Len(t, accounts, 3)
	assert.Equal(t, "11111-11111", accounts[0].ID)
	assert.Equal(t, "22222-22222", accounts[1].ID)
	assert.Equal(t, "33333-33333", accounts[2].ID)
}

func TestConcurrentTransfersNeverOverdraw(t *testing.T) {
	l := New(
		domain.Account{ID: "11111-11111", Balance: decimal.NewFromInt(100)},
		domain.Account{ID: "22222-22222", Balance: decimal.NewFromInt(100)},
	)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2 * n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_ = l.Transfer("11111-11111", "22222-22222", decimal.NewFromInt(3))
		}()
		go func() {
			defer wg.Done()
			_ = l.Transfer("22222-22222", "11111-11111", decimal.NewFromInt(2))
		}()
	}
	wg.Wait()

	a := balance(t, l, "11111-11111")
	b := balance(t, l, "22222-22222")
	assert.False(t, a.IsNegative())
	assert.False(t, b.IsNegative())
	assert.True(t, a.Add(b).Equal(decimal.NewFromInt(200)))
}
