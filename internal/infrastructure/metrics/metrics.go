package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/ledgerbatch/internal/domain"
)

// Metrics holds all Prometheus metrics of the batch processor. It implements
// usecase.Metrics.
type Metrics struct {
	registry *prometheus.Registry

	// File metrics
	FilesProcessed prometheus.Counter
	FileErrors     *prometheus.CounterVec

	// Operation metrics
	Operations *prometheus.CounterVec

	// Batch metrics
	Batches       prometheus.Counter
	Accounts      prometheus.Gauge
	BatchDuration prometheus.Gauge
	LastRun       prometheus.Gauge
}

// New creates the metrics and registers them on a registry of their own.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// File metrics
		FilesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbatch_files_processed_total",
			Help: "Total number of input files read and settled",
		}),
		FileErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerbatch_file_errors_total",
				Help: "Total number of batch errors by stage",
			},
			[]string{"stage"},
		),

		// Operation metrics
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerbatch_operations_total",
				Help: "Total number of settled records by status",
			},
			[]string{"status"},
		),

		// Batch metrics
		Batches: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbatch_batches_total",
			Help: "Total number of completed batch runs",
		}),
		Accounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerbatch_accounts",
			Help: "Number of accounts in the ledger after the last run",
		}),
		BatchDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerbatch_batch_duration_seconds",
			Help: "Duration of the last batch run",
		}),
		LastRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerbatch_last_run_timestamp_seconds",
			Help: "Unix time the last batch run finished",
		}),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) FileProcessed() {
	m.FilesProcessed.Inc()
}

func (m *Metrics) FileFailed(stage string) {
	m.FileErrors.WithLabelValues(stage).Inc()
}

func (m *Metrics) OperationSettled(status domain.Status) {
	m.Operations.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) BatchFinished(accounts int, duration time.Duration) {
	m.Batches.Inc()
	m.Accounts.Set(float64(accounts))
	m.BatchDuration.Set(duration.Seconds())
	m.LastRun.SetToCurrentTime()
}

// WriteTextfile writes the current values in the node exporter textfile
// collector format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
