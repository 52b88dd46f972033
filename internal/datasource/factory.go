package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/home-edge/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// CSVSourceType reads Football-Data files
	CSVSourceType SourceType = "csv"
	// SQLiteSourceType reads a SQLite match table
	SQLiteSourceType SourceType = "sqlite"
	// PostgresSourceType reads a PostgreSQL match table
	PostgresSourceType SourceType = "postgres"
)

// Factory creates sources from configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// HTTPClient builds the download client from csv.http settings
func (f *Factory) HTTPClient() *RateLimitedHTTPClient {
	return NewRateLimitedHTTPClient(HTTPConfigFrom(f.config.CSV.HTTP), f.logger)
}

// CSVSources creates one source per configured file, sharing httpClient for remote files
func (f *Factory) CSVSources(httpClient *RateLimitedHTTPClient) []Source {
	sources := make([]Source, 0, len(f.config.CSV.Files))
	for _, location := range f.config.CSV.Files {
		sources = append(sources, NewCSVSource(location, f.config.CSV.OddsPriority, httpClient))
	}
	return sources
}

// RelationalSource creates the table source for the configured sql.driver
func (f *Factory) RelationalSource() (RelationalSource, error) {
	filter := QueryFilter{
		HomeOddMax: f.config.SQL.HomeOddMax,
		AwayOddMin: f.config.SQL.AwayOddMin,
		Limit:      f.config.SQL.Limit,
	}

	switch SourceType(f.config.SQL.Driver) {
	case SQLiteSourceType:
		return NewSQLiteSource(f.config.SQLite.Path, f.config.SQL.Table, filter), nil
	case PostgresSourceType:
		return NewPostgresSource(f.config.Postgres, f.config.SQL.Table, filter), nil
	default:
		return nil, fmt.Errorf("unknown sql driver: %s", f.config.SQL.Driver)
	}
}

// HTTPConfigFrom converts csv.http settings, keeping defaults for unset values
func HTTPConfigFrom(cfg config.HTTPConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.CircuitBreakerMax = cfg.CircuitBreakerMax
	return httpCfg
}
