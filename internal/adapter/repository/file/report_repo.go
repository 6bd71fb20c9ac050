package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerbatch/internal/domain"
)

// ReportRepository implements usecase.ReportRepository over an append-only
// text file.
type ReportRepository struct {
	path   string
	logger zerolog.Logger
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(path string, logger zerolog.Logger) *ReportRepository {
	return &ReportRepository{path: path, logger: logger}
}

// FormatLine renders one result as a report line, without the newline.
// The amount follows the destination id with no separator.
func FormatLine(result domain.OperationResult) string {
	tx := result.Transaction

	var b strings.Builder
	b.WriteString(tx.Timestamp.Format(domain.TimestampLayout))
	b.WriteString(fieldSeparator)
	b.WriteString(result.Filename)
	b.WriteString(fieldSeparator)
	b.WriteString("transfer from ")
	b.WriteString(tx.FromAccountID)
	b.WriteString(" to ")
	b.WriteString(tx.ToAccountID)
	b.WriteString(tx.Amount.String())
	b.WriteString(fieldSeparator)
	b.WriteString(string(result.Status))
	b.WriteString(fieldSeparator)
	b.WriteString(result.Message)

	return b.String()
}

// Append writes one line per result, creating the file if needed. A line
// that fails to write is logged and the remaining lines are still attempted;
// the returned error joins every failure.
func (r *ReportRepository) Append(ctx context.Context, results []domain.OperationResult) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}

	var errs []error
	for _, result := range results {
		if _, err := f.WriteString(FormatLine(result) + "\n"); err != nil {
			r.logger.Error().
				Err(err).
				Str("file", result.Filename).
				Msg("failed to write report line")
			errs = append(errs, err)
		}
	}

	if err := f.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ListAll returns every line of the report in file order. Oversized lines
// are skipped with a warning.
func (r *ReportRepository) ListAll(ctx context.Context) ([]string, error) {
	var lines []string
	err := r.scan(func(_ int, line string) {
		lines = append(lines, line)
	})
	return lines, err
}

// ListBetween returns the lines whose timestamp falls within [start, end].
// Lines without a parseable timestamp are skipped with a warning.
func (r *ReportRepository) ListBetween(ctx context.Context, start, end time.Time) ([]string, error) {
	var lines []string
	err := r.scan(func(lineNo int, line string) {
		ts, err := lineTimestamp(line)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str("file", r.path).
				Int("line", lineNo).
				Msg("skipping report line without a timestamp")
			return
		}
		if ts.Before(start) || ts.After(end) {
			return
		}
		lines = append(lines, line)
	})
	return lines, err
}

func lineTimestamp(line string) (time.Time, error) {
	n := len(domain.TimestampLayout)
	if len(line) < n {
		return time.Time{}, fmt.Errorf("line shorter than %d characters", n)
	}
	return time.Parse(domain.TimestampLayout, line[:n])
}

func (r *ReportRepository) scan(fn func(lineNo int, line string)) error {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ErrReportNotFound
		}
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	err = eachLine(f, func(lineNo int, line string, oversized bool) {
		if oversized {
			r.logger.Warn().
				Str("file", r.path).
				Int("line", lineNo).
				Msg("skipping oversized report line")
			return
		}
		fn(lineNo, line)
	})
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}

	return nil
}
