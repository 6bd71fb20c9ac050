package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS batch_runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    files INTEGER NOT NULL,
    archived INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    operations INTEGER NOT NULL,
    succeeded INTEGER NOT NULL,
    errored INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_batch_runs_started
    ON batch_runs(started_at);

-- one row per input file seen by a run
CREATE TABLE IF NOT EXISTS processed_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    filename TEXT NOT NULL,
    checksum TEXT NOT NULL,
    records INTEGER NOT NULL,
    archived INTEGER NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    processed_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_processed_files_checksum
    ON processed_files(checksum);
`

func initializeSchema(conn *Connection) error {
	_, err := conn.db.Exec(schema)
	return err
}
