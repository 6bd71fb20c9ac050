package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerbatch/internal/domain"
	"github.com/iho/ledgerbatch/internal/parser"
)

// BatchUseCase drives one pass over the input directory: parse, validate and
// settle every record, archive each file, then write the report and persist
// the ledger.
type BatchUseCase struct {
	inputDir    string
	ledger      Ledger
	settlement  *SettlementUseCase
	accountRepo AccountRepository
	reportRepo  ReportRepository
	archiver    Archiver
	history     BatchHistory
	metrics     Metrics
	idGen       IDGenerator
	logger      zerolog.Logger
	now         func() time.Time
}

// BatchConfig wires a BatchUseCase. History, Metrics, Logger and Clock are optional.
type BatchConfig struct {
	InputDir    string
	Ledger      Ledger
	AccountRepo AccountRepository
	ReportRepo  ReportRepository
	Archiver    Archiver
	History     BatchHistory
	Metrics     Metrics
	IDGen       IDGenerator
	Logger      *zerolog.Logger
	Clock       func() time.Time
}

// NewBatchUseCase creates a new BatchUseCase.
func NewBatchUseCase(cfg BatchConfig) *BatchUseCase {
	if cfg.Metrics == nil {
		cfg.Metrics = noopMetrics{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &BatchUseCase{
		inputDir:    cfg.InputDir,
		ledger:      cfg.Ledger,
		settlement:  NewSettlementUseCase(cfg.Ledger),
		accountRepo: cfg.AccountRepo,
		reportRepo:  cfg.ReportRepo,
		archiver:    cfg.Archiver,
		history:     cfg.History,
		metrics:     cfg.Metrics,
		idGen:       cfg.IDGen,
		logger:      logger,
		now:         cfg.Clock,
	}
}

// BatchSummary describes the outcome of one run.
type BatchSummary struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Files       []string
	Archived    int
	FailedFiles []string
	Results     []domain.OperationResult
}

// Count returns the number of results with the given status.
func (s *BatchSummary) Count(status domain.Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Run converts the summary into a history record.
func (s *BatchSummary) Run() domain.BatchRun {
	return domain.BatchRun{
		ID:         s.RunID,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Files:      len(s.Files),
		Archived:   s.Archived,
		Failed:     len(s.FailedFiles),
		Operations: len(s.Results),
		Succeeded:  s.Count(domain.StatusSuccess),
		Errored:    s.Count(domain.StatusError),
	}
}

// Run processes every input file. Failures of individual files, of the report
// write or of the ledger save are logged and never abort the run; an error is
// returned only when the input directory cannot be listed. When there is
// nothing to process the summary has no files and nothing else is touched.
func (uc *BatchUseCase) Run(ctx context.Context) (*BatchSummary, error) {
	files, err := uc.inputFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to list input directory %s: %w", uc.inputDir, err)
	}

	summary := &BatchSummary{
		RunID:     uc.idGen.Generate(),
		StartedAt: uc.now(),
	}
	logger := uc.logger.With().Str("run_id", summary.RunID).Logger()

	if len(files) == 0 {
		logger.Info().Str("dir", uc.inputDir).Msg("no input files to process")
		return summary, nil
	}

	for _, path := range files {
		uc.processFile(ctx, logger, path, summary)
	}

	if err := uc.reportRepo.Append(ctx, summary.Results); err != nil {
		uc.metrics.FileFailed(StageReport)
		logger.Error().Err(err).Msg("failed to append results to report")
	}

	accounts := uc.ledger.List()
	if err := uc.accountRepo.Save(ctx, accounts); err != nil {
		uc.metrics.FileFailed(StagePersist)
		logger.Error().Err(err).Msg("failed to persist accounts")
	}

	summary.FinishedAt = uc.now()
	uc.metrics.BatchFinished(len(accounts), summary.FinishedAt.Sub(summary.StartedAt))

	if uc.history != nil {
		if err := uc.history.RecordRun(ctx, summary.Run()); err != nil {
			logger.Warn().Err(err).Msg("failed to record batch run")
		}
	}

	logger.Info().
		Int("files", len(summary.Files)).
		Int("archived", summary.Archived).
		Int("operations", len(summary.Results)).
		Int("errors", summary.Count(domain.StatusError)).
		Msg("batch finished")

	return summary, nil
}

func (uc *BatchUseCase) inputFiles() ([]string, error) {
	entries, err := os.ReadDir(uc.inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), InputFileSuffix) {
			continue
		}
		files = append(files, filepath.Join(uc.inputDir, entry.Name()))
	}

	return files, nil
}

func (uc *BatchUseCase) processFile(ctx context.Context, logger zerolog.Logger, path string, summary *BatchSummary) {
	name := filepath.Base(path)
	summary.Files = append(summary.Files, name)
	logger = logger.With().Str("file", name).Logger()

	record := domain.FileRecord{
		RunID:       summary.RunID,
		Filename:    name,
		ProcessedAt: uc.now(),
	}

	results, checksum, err := uc.settleFile(ctx, logger, path, name)
	record.Checksum = checksum
	record.Records = len(results)
	summary.Results = append(summary.Results, results...)

	if err != nil {
		uc.metrics.FileFailed(StageRead)
		summary.FailedFiles = append(summary.FailedFiles, name)
		record.Error = err.Error()
		logger.Error().Err(err).Msg("failed to process input file")
	} else {
		uc.metrics.FileProcessed()
		logger.Debug().Int("records", len(results)).Msg("input file processed")
	}

	if err := uc.archiver.Archive(ctx, path); err != nil {
		uc.metrics.FileFailed(StageArchive)
		if record.Error == "" {
			record.Error = err.Error()
		}
		logger.Error().Err(err).Msg("failed to archive input file")
	} else {
		record.Archived = true
		summary.Archived++
	}

	if uc.history != nil {
		if err := uc.history.RecordFile(ctx, record); err != nil {
			logger.Warn().Err(err).Msg("failed to record processed file")
		}
	}
}

// settleFile reads and settles one file. Records are settled in file order
// and each settlement is final even if a later record fails.
func (uc *BatchUseCase) settleFile(ctx context.Context, logger zerolog.Logger, path, name string) ([]domain.OperationResult, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	readAt := uc.now()

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])
	uc.warnIfSeen(ctx, logger, checksum)

	records, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, checksum, err
	}

	results := make([]domain.OperationResult, 0, len(records))
	for _, rec := range records {
		var result domain.OperationResult

		tx, err := domain.BuildTransaction(rec, name, readAt)
		if err != nil {
			result = domain.NewFailure(tx, err.Error())
		} else {
			result = uc.settlement.Settle(tx)
		}

		uc.metrics.OperationSettled(result.Status)
		results = append(results, result)
	}

	return results, checksum, nil
}

func (uc *BatchUseCase) warnIfSeen(ctx context.Context, logger zerolog.Logger, checksum string) {
	if uc.history == nil {
		return
	}

	seen, err := uc.history.SeenChecksum(ctx, checksum)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to look up file checksum")
		return
	}
	if seen {
		logger.Warn().Str("checksum", checksum).Msg("identical file content was already processed")
	}
}
