// Package metrics provides the centralized Prometheus metrics registry for back-test runs.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "home_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Source counter vectors
var (
	SourceRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_rows_total",
		Help:      "Total number of source rows by source type and normalization status",
	}, []string{"source_type", "status"})
	SourceFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_failures_total",
		Help:      "Total number of sources that could not be loaded",
	}, []string{"source_type"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SourceRowsTotal)
		registry.MustRegister(SourceFailuresTotal)

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(LedgerNetProfit)
		registry.MustRegister(LedgerROIPercent)
		registry.MustRegister(LedgerMatches)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// WriteTextfile writes every registered metric to path in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// RecordSourceRow records one row read from a source.
// status is "accepted" or the rejection reason.
func RecordSourceRow(sourceType, status string) {
	SourceRowsTotal.WithLabelValues(sourceType, status).Inc()
}

// RecordSourceFailure records a source that could not be loaded.
func RecordSourceFailure(sourceType string) {
	SourceFailuresTotal.WithLabelValues(sourceType).Inc()
}
