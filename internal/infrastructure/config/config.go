package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no env file is named.
const DefaultEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	// Layout
	InputDir     string `env:"LEDGER_INPUT_DIR"     envDefault:"input"`
	ArchiveDir   string `env:"LEDGER_ARCHIVE_DIR"   envDefault:"archive"`
	AccountsFile string `env:"LEDGER_ACCOUNTS_FILE" envDefault:"files/accounts.txt"`
	ReportFile   string `env:"LEDGER_REPORT_FILE"   envDefault:"files/report.txt"`

	// Batch history
	HistoryEnabled bool   `env:"LEDGER_HISTORY_ENABLED" envDefault:"true"`
	HistoryDB      string `env:"LEDGER_HISTORY_DB"      envDefault:"files/history.db"`

	// Metrics textfile, empty disables
	MetricsFile string `env:"LEDGER_METRICS_FILE" envDefault:""`

	// Archiving
	ArchiveMaxRetries    int           `env:"ARCHIVE_MAX_RETRIES"    envDefault:"3"`
	ArchiveRetryInterval time.Duration `env:"ARCHIVE_RETRY_INTERVAL" envDefault:"50ms"`

	// Watch mode
	WatchDebounce time.Duration `env:"WATCH_DEBOUNCE" envDefault:"500ms"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables. Variables from the
// named env files, or from DefaultEnvFile when none is named, are added first
// without overriding the real environment. A missing env file is ignored.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) == 0 {
		envPath = []string{DefaultEnvFile}
	}
	for _, p := range envPath {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
