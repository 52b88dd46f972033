// Package logger provides backtest-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for back-test runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a logger tagged with the component and run id.
func NewBacktestLogger(baseLogger *logrus.Logger, runID string) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "backtest",
			"run_id":    runID,
		}),
	}
}

// LogRunStarted logs the start of a run.
func (bl *BacktestLogger) LogRunStarted(method string, sources int, stake string) {
	bl.WithFields(logrus.Fields{
		"method":  method,
		"sources": sources,
		"stake":   stake,
	}).Info("Backtest run started")
}

// LogSourceLoaded logs how many rows a source produced and how many survived normalization.
// Rejections by reason are logged at debug level.
func (bl *BacktestLogger) LogSourceLoaded(source string, rowsRead, accepted int, rejected map[string]int) {
	entry := bl.WithFields(logrus.Fields{
		"source":    source,
		"rows_read": rowsRead,
		"accepted":  accepted,
	})
	entry.Info("Source loaded")

	if len(rejected) == 0 {
		return
	}
	fields := logrus.Fields{}
	for reason, count := range rejected {
		fields["rejected_"+reason] = count
	}
	entry.WithFields(fields).Debug("Source rows rejected")
}

// LogSourceFailed logs a source that could not be read. The run continues without it.
func (bl *BacktestLogger) LogSourceFailed(source string, err error) {
	bl.WithFields(logrus.Fields{
		"source": source,
		"error":  err.Error(),
	}).Warn("Source unavailable, skipping")
}

// LogRunCompleted logs the summary figures of a finished run.
func (bl *BacktestLogger) LogRunCompleted(matches, wins, draws, losses int, netProfit, roi string, duration time.Duration) {
	bl.WithFields(logrus.Fields{
		"matches":     matches,
		"wins":        wins,
		"draws":       draws,
		"losses":      losses,
		"net_profit":  netProfit,
		"roi_percent": roi,
		"duration_ms": duration.Milliseconds(),
	}).Info("Backtest run completed")
}
