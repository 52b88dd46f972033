package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/home-edge/internal/datasource"
	"github.com/yourusername/home-edge/internal/logger"
	"github.com/yourusername/home-edge/internal/metrics"
	"github.com/yourusername/home-edge/internal/models"
	"github.com/yourusername/home-edge/internal/strategy"
)

// Run methods used as the metrics label
const (
	MethodCSV = "csv"
	MethodSQL = "sql"
)

// Result is the outcome of one engine run
type Result struct {
	RunID         uuid.UUID
	Ledger        *Ledger
	Summary       Summary
	SourcesLoaded []string
	SourcesFailed []string
}

// Engine orchestrates backtesting runs
type Engine struct {
	config   BacktestConfig
	method   string
	sources  []datasource.Source
	criteria strategy.Criteria
	logger   *logrus.Logger
}

// NewEngine creates a new backtesting engine
func NewEngine(cfg BacktestConfig, method string, sources []datasource.Source, criteria strategy.Criteria, log *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}
	if criteria == nil {
		return nil, fmt.Errorf("criteria is required")
	}
	if log == nil {
		log = logrus.New()
	}

	return &Engine{
		config:   cfg,
		method:   method,
		sources:  sources,
		criteria: criteria,
		logger:   log,
	}, nil
}

// Config returns the backtest configuration
func (e *Engine) Config() BacktestConfig {
	return e.config
}

// Run loads every source, keeps the qualifying matches, orders them and settles one bet per
// match. Unavailable sources are skipped with a warning. Only context cancellation fails the run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.New()}
	log := logger.NewBacktestLogger(e.logger, result.RunID.String())
	log.LogRunStarted(e.method, len(e.sources), e.config.Stake.String())

	var (
		records []models.MatchRecord
		ordered []bool
	)
	for _, source := range e.sources {
		if err := ctx.Err(); err != nil {
			metrics.RecordBacktestRun(e.method, "failure", time.Since(start).Seconds())
			return nil, err
		}

		rowSet, err := source.Load(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				metrics.RecordBacktestRun(e.method, "failure", time.Since(start).Seconds())
				return nil, err
			}
			log.LogSourceFailed(source.Name(), err)
			metrics.RecordSourceFailure(source.Type())
			result.SourcesFailed = append(result.SourcesFailed, source.Name())
			continue
		}

		accepted := e.normalize(source.Type(), rowSet, log)
		records = append(records, accepted...)
		ordered = append(ordered, rowSet.Ordered)
		result.SourcesLoaded = append(result.SourcesLoaded, source.Name())
	}

	// A single store-ordered row set is kept as returned
	if !(len(ordered) == 1 && ordered[0]) {
		records = Sequence(records)
	}

	result.Ledger = Fold(records, e.config.Stake)
	result.Summary = Summarize(result.Ledger)

	duration := time.Since(start)
	metrics.RecordBacktestRun(e.method, "success", duration.Seconds())
	metrics.UpdateLedger(result.Summary.TotalMatches,
		result.Summary.NetProfit.InexactFloat64(), result.Summary.ROI.InexactFloat64())

	s := result.Summary
	log.LogRunCompleted(s.TotalMatches, s.Wins, s.Draws, s.Losses,
		s.NetProfit.StringFixed(2), s.ROI.StringFixed(2), duration)

	return result, nil
}

func (e *Engine) normalize(sourceType string, rowSet *datasource.RowSet, log *logger.BacktestLogger) []models.MatchRecord {
	normalizer := NewNormalizer(rowSet.Schema, e.criteria)
	accepted := make([]models.MatchRecord, 0)
	rejected := make(map[string]int)

	for _, row := range rowSet.Rows {
		record, err := normalizer.Normalize(rowSet.Source, row)
		reason := RejectionReason(err)
		metrics.RecordSourceRow(sourceType, reason)
		if err != nil {
			rejected[reason]++
			continue
		}
		accepted = append(accepted, record)
	}

	log.LogSourceLoaded(rowSet.Source, len(rowSet.Rows), len(accepted), rejected)
	return accepted
}
