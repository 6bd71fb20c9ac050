package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/ledgerbatch/internal/domain"
)

func TestAccountRepository_LoadMissingFile(t *testing.T) {
	repo := NewAccountRepository(filepath.Join(t.TempDir(), "accounts.txt"), zerolog.Nop())

	accounts, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAccountRepository_LoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	content := "11111-11111 | 500\n" +
		"\n" +
		"22222-22222|0.25\n" +
		"33333-33333 | lots\n" +
		"44444-44444 | 1 | 2\n" +
		"no separator\n" +
		" | 10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var logs bytes.Buffer
	repo := NewAccountRepository(path, zerolog.New(&logs))

	accounts, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "11111-11111", accounts[0].ID)
	assert.True(t, decimal.NewFromInt(500).Equal(accounts[0].Balance))
	assert.Equal(t, "22222-22222", accounts[1].ID)
	assert.True(t, decimal.RequireFromString("0.25").Equal(accounts[1].Balance))

	assert.Equal(t, 4, bytes.Count(logs.Bytes(), []byte("skipping malformed account line")))
	assert.Contains(t, logs.String(), `"line":4`)
}

func TestAccountRepository_LoadLongLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	long := strings.Repeat("x", 70000) + " | 1\n"
	huge := strings.Repeat("y", maxLineSize+1) + " | 1\n"
	content := "11111-11111 | 500\n" + long + "22222-22222 | 7\n" + huge + "33333-33333 | 9"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var logs bytes.Buffer
	repo := NewAccountRepository(path, zerolog.New(&logs))

	accounts, err := repo.Load(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if len(acc.ID) > 20 {
			continue
		}
		ids = append(ids, acc.ID)
	}
	assert.Equal(t, []string{"11111-11111", "22222-22222", "33333-33333"}, ids)
	assert.Len(t, accounts, 4, "a 70000 character line is still an account line")
	assert.True(t, decimal.NewFromInt(7).Equal(accounts[2].Balance))

	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("skipping oversized account line")))
	assert.Contains(t, logs.String(), `"line":4`)
}

func TestAccountRepository_LoadReadError(t *testing.T) {
	path := t.TempDir()
	repo := NewAccountRepository(path, zerolog.Nop())

	accounts, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read accounts file")
	assert.Empty(t, accounts)
}

func TestAccountRepository_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files", "accounts.txt")
	repo := NewAccountRepository(path, zerolog.Nop())

	want := []domain.Account{
		{ID: "11111-11111", Balance: decimal.NewFromInt(400)},
		{ID: "22222-22222", Balance: decimal.RequireFromString("100.5")},
		{ID: "33333-33333", Balance: decimal.Zero},
	}
	require.NoError(t, repo.Save(context.Background(), want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "11111-11111 | 400\n22222-22222 | 100.5\n33333-33333 | 0\n", string(data))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].Balance.Equal(got[i].Balance), "balance of %s", want[i].ID)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestAccountRepository_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.txt")
	require.NoError(t, os.WriteFile(path, []byte("99999-99999 | 1\n"), 0o644))

	repo := NewAccountRepository(path, zerolog.Nop())
	require.NoError(t, repo.Save(context.Background(), []domain.Account{{ID: "11111-11111", Balance: decimal.NewFromInt(7)}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "11111-11111 | 7\n", string(data))
}
