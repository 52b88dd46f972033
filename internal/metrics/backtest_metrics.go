// Package metrics defines backtesting-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by method and status",
	}, []string{"method", "status"})
)

// Backtest histograms
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
)

// Ledger gauges, set from the last completed run
var (
	LedgerNetProfit = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_net_profit",
		Help:      "Net profit of the last backtest run in stake currency units",
	})
	LedgerROIPercent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_roi_percent",
		Help:      "Return on investment of the last backtest run in percent",
	})
	LedgerMatches = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ledger_matches",
		Help:      "Number of bets in the last backtest run",
	})
)

// RecordBacktestRun records a backtest run event.
// method should be one of: "csv", "sql"
// status should be one of: "success", "failure"
func RecordBacktestRun(method, status string, durationSeconds float64) {
	BacktestRunsTotal.WithLabelValues(method, status).Inc()
	BacktestDuration.Observe(durationSeconds)
}

// UpdateLedger sets the ledger gauges.
func UpdateLedger(matches int, netProfit, roiPercent float64) {
	LedgerMatches.Set(float64(matches))
	LedgerNetProfit.Set(netProfit)
	LedgerROIPercent.Set(roiPercent)
}
