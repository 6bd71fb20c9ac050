package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/ledgerbatch/internal/domain"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryRepository implements usecase.BatchHistory.
type HistoryRepository struct {
	conn *Connection
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(conn *Connection) *HistoryRepository {
	return &HistoryRepository{conn: conn}
}

// SeenChecksum reports whether a file with this checksum was recorded before.
func (r *HistoryRepository) SeenChecksum(ctx context.Context, checksum string) (bool, error) {
	var count int
	err := r.conn.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM processed_files WHERE checksum = ?`, checksum,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to look up checksum: %w", err)
	}

	return count > 0, nil
}

// RecordFile stores one processed file.
func (r *HistoryRepository) RecordFile(ctx context.Context, record domain.FileRecord) error {
	_, err := r.conn.db.ExecContext(ctx, `
		INSERT INTO processed_files (run_id, filename, checksum, records, archived, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Filename,
		record.Checksum,
		record.Records,
		record.Archived,
		record.Error,
		record.ProcessedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record file: %w", err)
	}

	return nil
}

// RecordRun stores a finished run. Recording the same run twice updates it.
func (r *HistoryRepository) RecordRun(ctx context.Context, run domain.BatchRun) error {
	_, err := r.conn.db.ExecContext(ctx, `
		INSERT INTO batch_runs (id, started_at, finished_at, files, archived, failed, operations, succeeded, errored)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			files = excluded.files,
			archived = excluded.archived,
			failed = excluded.failed,
			operations = excluded.operations,
			succeeded = excluded.succeeded,
			errored = excluded.errored`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.Files,
		run.Archived,
		run.Failed,
		run.Operations,
		run.Succeeded,
		run.Errored,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// ListRuns returns up to limit runs, most recent first.
func (r *HistoryRepository) ListRuns(ctx context.Context, limit int) ([]domain.BatchRun, error) {
	rows, err := r.conn.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, files, archived, failed, operations, succeeded, errored
		FROM batch_runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.BatchRun
	for rows.Next() {
		var run domain.BatchRun
		var startedAt, finishedAt string
		if err := rows.Scan(
			&run.ID,
			&startedAt,
			&finishedAt,
			&run.Files,
			&run.Archived,
			&run.Failed,
			&run.Operations,
			&run.Succeeded,
			&run.Errored,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("invalid start time for run %s: %w", run.ID, err)
		}
		if run.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
			return nil, fmt.Errorf("invalid finish time for run %s: %w", run.ID, err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}
