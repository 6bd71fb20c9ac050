package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerbatch/internal/adapter/repository/file"
	"github.com/iho/ledgerbatch/internal/adapter/repository/sqlite"
	"github.com/iho/ledgerbatch/internal/infrastructure/config"
	"github.com/iho/ledgerbatch/internal/infrastructure/idgen"
	"github.com/iho/ledgerbatch/internal/infrastructure/logger"
	"github.com/iho/ledgerbatch/internal/infrastructure/metrics"
	"github.com/iho/ledgerbatch/internal/ledger"
	"github.com/iho/ledgerbatch/internal/usecase"
)

// app holds everything a command needs. The ledger is loaded once and
// shared by every batch run in the process.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	out    io.Writer

	ledger   *ledger.Ledger
	history  *sqlite.HistoryRepository
	conn     *sqlite.Connection
	metrics  *metrics.Metrics
	batch    *usecase.BatchUseCase
	reportUC *usecase.ReportUseCase
}

func newApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*app, error) {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, opts)

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})

	if err := file.EnsureLayout(
		[]string{cfg.InputDir, cfg.ArchiveDir},
		[]string{cfg.AccountsFile, cfg.ReportFile},
	); err != nil {
		log.Warn().Err(err).Msg("failed to prepare workspace layout")
	}

	accountRepo := file.NewAccountRepository(cfg.AccountsFile, log)
	accounts, err := accountRepo.Load(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Str("file", cfg.AccountsFile).
			Int("accounts", len(accounts)).
			Msg("failed to read accounts file, continuing with the accounts read so far")
	}
	l := ledger.New(accounts...)
	log.Debug().Int("accounts", l.Len()).Str("file", cfg.AccountsFile).Msg("ledger loaded")

	a := &app{
		cfg:     cfg,
		logger:  log,
		out:     cmd.OutOrStdout(),
		ledger:  l,
		metrics: metrics.New(),
	}

	reportRepo := file.NewReportRepository(cfg.ReportFile, log)
	retrier := file.NewRetrier(cfg.ArchiveMaxRetries, cfg.ArchiveRetryInterval, log)

	batchCfg := usecase.BatchConfig{
		InputDir:    cfg.InputDir,
		Ledger:      l,
		AccountRepo: accountRepo,
		ReportRepo:  reportRepo,
		Archiver:    file.NewArchiver(cfg.ArchiveDir, retrier),
		Metrics:     a.metrics,
		IDGen:       idgen.NewULIDGenerator(),
		Logger:      &log,
	}

	if cfg.HistoryEnabled {
		conn, err := sqlite.Open(cfg.HistoryDB)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.HistoryDB).Msg("batch history disabled")
		} else {
			a.conn = conn
			a.history = sqlite.NewHistoryRepository(conn)
			batchCfg.History = a.history
		}
	}

	a.batch = usecase.NewBatchUseCase(batchCfg)
	a.reportUC = usecase.NewReportUseCase(reportRepo)

	return a, nil
}

func applyOverrides(cfg *config.Config, opts *rootOptions) {
	if opts.inputDir != "" {
		cfg.InputDir = opts.inputDir
	}
	if opts.archiveDir != "" {
		cfg.ArchiveDir = opts.archiveDir
	}
	if opts.accountsFile != "" {
		cfg.AccountsFile = opts.accountsFile
	}
	if opts.reportFile != "" {
		cfg.ReportFile = opts.reportFile
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
}

func (a *app) Close() error {
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

// withApp builds the app for one command invocation and closes it afterwards.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// runBatch runs one batch and prints its outcome.
func (a *app) runBatch(ctx context.Context) error {
	summary, err := a.batch.Run(ctx)
	if err != nil {
		printError(a.out, err.Error())
		return err
	}

	printBatchSummary(a.out, summary)
	if len(summary.Files) > 0 {
		printAccounts(a.out, a.ledger.List())
	}

	if a.cfg.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
			a.logger.Warn().Err(err).Str("file", a.cfg.MetricsFile).Msg("failed to write metrics")
		}
	}

	return nil
}
