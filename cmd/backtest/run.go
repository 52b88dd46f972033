package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yourusername/home-edge/internal/backtest"
	"github.com/yourusername/home-edge/internal/config"
	"github.com/yourusername/home-edge/internal/datasource"
	"github.com/yourusername/home-edge/internal/strategy"
)

func addCSVFlags(f *pflag.FlagSet, opts *csvOptions) {
	f.StringSliceVar(&opts.files, "files", nil, "Football-Data CSV files or URLs")
	f.StringVar(&opts.teams, "teams", "", "Home teams to back (comma separated)")
	f.StringVar(&opts.exclude, "exclude", "", "Excluded opponents (comma separated)")
	f.StringVar(&opts.oddsPref, "odds-pref", "", "Home odds column preference (comma separated)")
	f.Float64Var(&opts.stake, "stake", 0, "Stake per bet")
	f.IntVar(&opts.maxPrint, "max", -1, "Maximum ledger rows to print (negative prints all)")
}

func addSQLFlags(f *pflag.FlagSet, opts *sqlOptions) {
	addTableFlags(f, opts)
	f.Float64Var(&opts.homeMax, "home-max", 0, "Back the home side when its odd is at most this value")
	f.Float64Var(&opts.awayMin, "away-min", 0, "Require the away odd to be above this value")
	f.Float64Var(&opts.stake, "stake", 0, "Stake per bet")
	f.IntVar(&opts.limit, "limit", 0, "Maximum matches read, in chronological order (0 for no limit)")
}

func addTableFlags(f *pflag.FlagSet, opts *sqlOptions) {
	f.StringVar(&opts.driver, "driver", "", "Relational driver: sqlite or postgres")
	f.StringVar(&opts.db, "db", "", "SQLite database file")
	f.StringVar(&opts.table, "table", "", "Match table")
}

// readConfig requires the file only when its path was given on the command line
func readConfig(path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(path)
	}
	return config.LoadWithDefaults(path)
}

// parseList splits a comma separated flag value, dropping blank entries
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func applyCSVOverrides(cmd *cobra.Command, cfg *config.Config, opts csvOptions) {
	f := cmd.Flags()
	if f.Changed("files") {
		cfg.CSV.Files = opts.files
	}
	if f.Changed("teams") {
		cfg.CSV.HomeTeams = parseList(opts.teams)
	}
	if f.Changed("exclude") {
		cfg.CSV.ExcludeOpponents = parseList(opts.exclude)
	}
	if f.Changed("odds-pref") {
		cfg.CSV.OddsPriority = parseList(opts.oddsPref)
	}
	if f.Changed("stake") {
		cfg.Backtest.Stake = opts.stake
	}
	if f.Changed("max") {
		cfg.Backtest.MaxPrint = opts.maxPrint
	}
}

func applySQLOverrides(cmd *cobra.Command, cfg *config.Config, opts sqlOptions) {
	f := cmd.Flags()
	if f.Changed("driver") {
		cfg.SQL.Driver = opts.driver
	}
	if f.Changed("db") {
		cfg.SQLite.Path = opts.db
	}
	if f.Changed("table") {
		cfg.SQL.Table = opts.table
	}
	if f.Changed("home-max") {
		cfg.SQL.HomeOddMax = opts.homeMax
	}
	if f.Changed("away-min") {
		cfg.SQL.AwayOddMin = opts.awayMin
	}
	if f.Changed("stake") {
		cfg.Backtest.Stake = opts.stake
	}
	if f.Changed("limit") {
		cfg.SQL.Limit = opts.limit
	}
}

func resolveExtractOptions(cmd *cobra.Command, cfg *config.Config, opts extractOptions) extractOptions {
	f := cmd.Flags()
	if !f.Changed("archive") {
		opts.archive = cfg.SQLite.ArchivePath
	}
	if !f.Changed("member") {
		opts.member = filepath.Base(cfg.SQLite.Path)
	}
	return opts
}

func runCSV(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) error {
	btConfig, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		return fmt.Errorf("invalid backtest config: %w", err)
	}

	factory := datasource.NewFactory(cfg, logger)
	httpClient := factory.HTTPClient()
	defer httpClient.Close()

	criteria := strategy.NewTeamCriteria(cfg.CSV.HomeTeams, cfg.CSV.ExcludeOpponents)
	engine, err := backtest.NewEngine(btConfig, backtest.MethodCSV, factory.CSVSources(httpClient), criteria, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	header := backtest.FileRunHeader(cfg.CSV.Files, criteria.AllowedHome(), criteria.ExcludedAway(), btConfig.Stake)
	reporter := backtest.NewConsoleReporter(out, backtest.LayoutFile, btConfig)
	return reporter.Report(header, result.Ledger, result.Summary)
}

func runSQL(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) error {
	btConfig, err := backtest.FromConfig(&cfg.Backtest)
	if err != nil {
		return fmt.Errorf("invalid backtest config: %w", err)
	}

	if !cfg.UsesPostgres() {
		prepareSQLite(cfg, logger)
	}

	source, err := datasource.NewFactory(cfg, logger).RelationalSource()
	if err != nil {
		return err
	}

	homeMax := decimal.NewFromFloat(cfg.SQL.HomeOddMax)
	awayMin := decimal.NewFromFloat(cfg.SQL.AwayOddMin)
	criteria := strategy.NewOddsThresholdCriteria(homeMax, awayMin)

	engine, err := backtest.NewEngine(btConfig, backtest.MethodSQL, []datasource.Source{source}, criteria, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	header := backtest.RelationalRunHeader(databaseLabel(cfg), cfg.SQL.Table, homeMax, awayMin, btConfig.Stake)
	reporter := backtest.NewConsoleReporter(out, backtest.LayoutRelational, btConfig)
	return reporter.Report(header, result.Ledger, result.Summary)
}

func runExtremes(ctx context.Context, cfg *config.Config, logger *logrus.Logger, out io.Writer) error {
	source, err := datasource.NewFactory(cfg, logger).RelationalSource()
	if err != nil {
		return err
	}

	oldest, newest, err := source.Extremes(ctx)
	if err != nil {
		return fmt.Errorf("failed to read table extremes: %w", err)
	}

	btConfig := backtest.BacktestConfig{Stake: decimal.NewFromFloat(cfg.Backtest.Stake)}
	backtest.NewConsoleReporter(out, backtest.LayoutRelational, btConfig).ReportExtremes(oldest, newest)
	return nil
}

func runExtract(opts extractOptions, logger *logrus.Logger) error {
	if opts.archive == "" {
		return fmt.Errorf("no archive given")
	}
	target, err := datasource.ExtractMember(opts.archive, opts.member, opts.dest)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"archive": opts.archive, "path": target}).Info("Database extracted")
	return nil
}

// prepareSQLite refreshes the database file from its archive when the archive is present
func prepareSQLite(cfg *config.Config, logger *logrus.Logger) {
	archive := cfg.SQLite.ArchivePath
	if archive == "" {
		return
	}
	if _, err := os.Stat(archive); err != nil {
		logger.WithField("archive", archive).Info("Database archive not found, using existing database file")
		return
	}

	member := filepath.Base(cfg.SQLite.Path)
	target, err := datasource.ExtractMember(archive, member, filepath.Dir(cfg.SQLite.Path))
	if err != nil {
		entry := logger.WithFields(logrus.Fields{"archive": archive, "member": member})
		if errors.Is(err, datasource.ErrMemberNotFound) {
			entry.Warn("Database not found in archive")
		} else {
			entry.WithError(err).Warn("Failed to extract database")
		}
		return
	}
	logger.WithFields(logrus.Fields{"archive": archive, "path": target}).Info("Database extracted")
}

func databaseLabel(cfg *config.Config) string {
	if cfg.UsesPostgres() {
		return fmt.Sprintf("%s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Name)
	}
	return cfg.SQLite.Path
}
