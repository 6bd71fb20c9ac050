// Package file stores the ledger snapshot, the operation report and the
// input archive as plain files.
package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbatch/internal/domain"
)

const fieldSeparator = " | "

// AccountRepository implements usecase.AccountRepository over a file of
// "accountId | balance" lines.
type AccountRepository struct {
	path   string
	logger zerolog.Logger
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(path string, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{path: path, logger: logger}
}

// Load reads every well-formed account line. A missing file is an empty
// ledger. Oversized lines, lines with the wrong number of fields and lines
// with an unparseable balance are skipped with a warning. When reading fails
// part way the accounts read so far are returned with the error.
func (r *AccountRepository) Load(ctx context.Context) ([]domain.Account, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info().Str("file", r.path).Msg("accounts file not found, starting with an empty ledger")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open accounts file: %w", err)
	}
	defer f.Close()

	var accounts []domain.Account
	err = eachLine(f, func(lineNo int, line string, oversized bool) {
		if oversized {
			r.logger.Warn().
				Str("file", r.path).
				Int("line", lineNo).
				Msg("skipping oversized account line")
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		acc, err := parseAccountLine(line)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str("file", r.path).
				Int("line", lineNo).
				Msg("skipping malformed account line")
			return
		}
		accounts = append(accounts, acc)
	})
	if err != nil {
		return accounts, fmt.Errorf("failed to read accounts file: %w", err)
	}

	return accounts, nil
}

func parseAccountLine(line string) (domain.Account, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 2 {
		return domain.Account{}, fmt.Errorf("expected 2 fields, got %d", len(parts))
	}

	id := strings.TrimSpace(parts[0])
	if id == "" {
		return domain.Account{}, errors.New("empty account id")
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Account{}, fmt.Errorf("invalid balance %q", strings.TrimSpace(parts[1]))
	}

	return domain.Account{ID: id, Balance: balance}, nil
}

// Save replaces the file with one line per account. The new content is
// written to a temporary file in the same directory and renamed over the old
// one, so a failed write leaves the previous snapshot intact.
func (r *AccountRepository) Save(ctx context.Context, accounts []domain.Account) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create accounts directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary accounts file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, acc := range accounts {
		fmt.Fprint(w, acc.ID, fieldSeparator, acc.Balance.String(), "\n")
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace accounts file: %w", err)
	}

	return nil
}
