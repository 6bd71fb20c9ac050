package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbatch/internal/domain"
)

// Ledger is the in-memory account store mutated by settlement.
type Ledger interface {
	GetOrCreate(id string) domain.Account
	Transfer(fromID, toID string, amount decimal.Decimal) error
	List() []domain.Account
}

// AccountRepository loads and persists ledger snapshots.
type AccountRepository interface {
	Load(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, accounts []domain.Account) error
}

// ReportRepository defines access to the append-only operation report.
type ReportRepository interface {
	Append(ctx context.Context, results []domain.OperationResult) error
	ListAll(ctx context.Context) ([]string, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]string, error)
}

// Archiver moves processed input files out of the input directory.
type Archiver interface {
	Archive(ctx context.Context, path string) error
}

// BatchHistory records runs and processed files.
type BatchHistory interface {
	SeenChecksum(ctx context.Context, checksum string) (bool, error)
	RecordFile(ctx context.Context, record domain.FileRecord) error
	RecordRun(ctx context.Context, run domain.BatchRun) error
}

// Metrics observes batch progress.
type Metrics interface {
	FileProcessed()
	FileFailed(stage string)
	OperationSettled(status domain.Status)
	BatchFinished(accounts int, duration time.Duration)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// Generate calls f.
func (f IDGeneratorFunc) Generate() string {
	return f()
}

type noopMetrics struct{}

func (noopMetrics) FileProcessed()                   {}
func (noopMetrics) FileFailed(string)                {}
func (noopMetrics) OperationSettled(domain.Status)   {}
func (noopMetrics) BatchFinished(int, time.Duration) {}
