// Package main provides the entry point for the home-win backtesting CLI tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/home-edge/internal/config"
	applogger "github.com/yourusername/home-edge/internal/logger"
	"github.com/yourusername/home-edge/internal/metrics"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	logger     *logrus.Logger
	cfg        *config.Config

	csvFlags      csvOptions
	sqlFlags      sqlOptions
	extremesFlags sqlOptions
	extractFlags  extractOptions
)

type csvOptions struct {
	files    []string
	teams    string
	exclude  string
	oddsPref string
	stake    float64
	maxPrint int
}

type sqlOptions struct {
	driver  string
	db      string
	table   string
	homeMax float64
	awayMin float64
	stake   float64
	limit   int
}

type extractOptions struct {
	archive string
	member  string
	dest    string
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file (optional)")

	addCSVFlags(csvCmd.Flags(), &csvFlags)
	addSQLFlags(sqlCmd.Flags(), &sqlFlags)
	addTableFlags(extremesCmd.Flags(), &extremesFlags)

	f := extractCmd.Flags()
	f.StringVar(&extractFlags.archive, "archive", "", "Zip archive holding the database")
	f.StringVar(&extractFlags.member, "member", "", "Archive member to extract")
	f.StringVar(&extractFlags.dest, "dest", ".", "Destination directory")
}

var rootCmd = &cobra.Command{
	Use:          "backtest",
	Short:        "Back-test a fixed-stake home-win strategy",
	Long:         `Replay historical matches from Football-Data CSV files or a match table and settle a fixed-stake bet on the home side of every qualifying match.`,
	Version:      fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context(), cmd.Flags().Changed("config")); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Back-test home teams over Football-Data CSV files",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyCSVOverrides(cmd, cfg, csvFlags)
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return withMetrics(func() error {
			return runCSV(cmd.Context(), cfg, logger, os.Stdout)
		})
	},
}

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Back-test home favourites from a relational match table",
	RunE: func(cmd *cobra.Command, args []string) error {
		applySQLOverrides(cmd, cfg, sqlFlags)
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return withMetrics(func() error {
			return runSQL(cmd.Context(), cfg, logger, os.Stdout)
		})
	},
}

var extremesCmd = &cobra.Command{
	Use:   "extremes",
	Short: "Show the oldest and newest match of a table",
	RunE: func(cmd *cobra.Command, args []string) error {
		applySQLOverrides(cmd, cfg, extremesFlags)
		if err := config.Validate(cfg); err != nil {
			return err
		}
		return runExtremes(cmd.Context(), cfg, logger, os.Stdout)
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the SQLite database from its zip archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := resolveExtractOptions(cmd, cfg, extractFlags)
		return runExtract(opts, logger)
	},
}

func main() {
	rootCmd.AddCommand(csvCmd, sqlCmd, extremesCmd, extractCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context, explicit bool) error {
	var err error
	cfg, err = readConfig(configFile, explicit)
	if err != nil {
		return err
	}

	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	return nil
}

// withMetrics writes the metrics textfile after run when metrics are enabled
func withMetrics(run func() error) error {
	if !cfg.Metrics.Enabled {
		return run()
	}

	metrics.InitRegistry()
	runErr := run()
	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		logger.WithError(err).Warn("Failed to write metrics textfile")
	} else {
		logger.WithField("path", cfg.Metrics.TextfilePath).Debug("Metrics textfile written")
	}
	return runErr
}
