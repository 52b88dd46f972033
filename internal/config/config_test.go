// Package config provides configuration management for the home-edge back-tester.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedValidationError      = "expected validation error, got nil"
	homeEdgeName                 = "home-edge"
	developmentEnv               = "development"
	testDBPassword               = "TEST_DB_PASSWORD"
	expandedSecretValue          = "expanded_secret_value"
)

func loadDefaults(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}
	return cfg
}

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != homeEdgeName {
		t.Errorf("expected app name '%s', got '%s'", homeEdgeName, cfg.App.Name)
	}
	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}
	if cfg.Backtest.Stake != 10 {
		t.Errorf("expected stake 10, got %v", cfg.Backtest.Stake)
	}
	if cfg.Backtest.MaxPrint != 20 {
		t.Errorf("expected max_print 20, got %d", cfg.Backtest.MaxPrint)
	}
	if len(cfg.CSV.Files) != 2 {
		t.Fatalf("expected 2 csv files, got %d", len(cfg.CSV.Files))
	}
	if cfg.CSV.OddsPriority[0] != "PSH" {
		t.Errorf("expected first odds column PSH, got %s", cfg.CSV.OddsPriority[0])
	}
	if cfg.SQL.Table != "betfront" || cfg.SQL.Limit != 50 {
		t.Errorf("unexpected sql config: %+v", cfg.SQL)
	}
	if cfg.SQL.AwayOddMin != 6 {
		t.Errorf("expected away_odd_min 6, got %v", cfg.SQL.AwayOddMin)
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoadWithDefaultsMissingFile(t *testing.T) {
	cfg := loadDefaults(t)

	if cfg.Backtest.Stake != 5 {
		t.Errorf("expected default stake 5, got %v", cfg.Backtest.Stake)
	}
	if cfg.Backtest.MaxPrint != -1 {
		t.Errorf("expected default max_print -1, got %d", cfg.Backtest.MaxPrint)
	}
	if len(cfg.CSV.Files) != 6 {
		t.Errorf("expected 6 default csv files, got %d", len(cfg.CSV.Files))
	}
	if got := strings.Join(cfg.CSV.OddsPriority, ","); got != "B365CH,B365H,PSH,PH,AvgH,MaxH" {
		t.Errorf("unexpected default odds priority %s", got)
	}
	if cfg.SQL.HomeOddMax != 1.5 || cfg.SQL.AwayOddMin != 5.0 || cfg.SQL.Limit != 100 {
		t.Errorf("unexpected default sql config: %+v", cfg.SQL)
	}
	if cfg.SQLite.Path != "database.sqlite" || cfg.SQLite.ArchivePath != "database.zip" {
		t.Errorf("unexpected default sqlite config: %+v", cfg.SQLite)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadWithDefaultsMergesFile(t *testing.T) {
	cfg, err := LoadWithDefaults(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Backtest.Stake != 10 {
		t.Errorf("expected file stake 10, got %v", cfg.Backtest.Stake)
	}
	// Not set in the file
	if cfg.CSV.HTTP.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.CSV.HTTP.MaxRetries)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected default postgres port, got %d", cfg.Postgres.Port)
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable overrides
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("HOME_EDGE_BACKTEST_STAKE", "7.5")
	t.Setenv("HOME_EDGE_SQL_TABLE", "matches")

	cfg, err := LoadWithDefaults(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Backtest.Stake != 7.5 {
		t.Errorf("expected stake override 7.5, got %v", cfg.Backtest.Stake)
	}
	if cfg.SQL.Table != "matches" {
		t.Errorf("expected table override 'matches', got '%s'", cfg.SQL.Table)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests ${VAR} placeholders
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	t.Setenv(testDBPassword, expandedSecretValue)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Postgres.Password != expandedSecretValue {
		t.Errorf("expected expanded password '%s', got '%s'", expandedSecretValue, cfg.Postgres.Password)
	}
}

// TestLoadConfigPartialFileUsesDefaults tests that keys missing from the file keep their defaults
func TestLoadConfigPartialFileUsesDefaults(t *testing.T) {
	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Backtest.Stake != 5 {
		t.Errorf("expected default stake 5, got %v", cfg.Backtest.Stake)
	}
	if len(cfg.CSV.OddsPriority) == 0 || cfg.CSV.OddsPriority[0] != "B365CH" {
		t.Errorf("expected default odds priority, got %v", cfg.CSV.OddsPriority)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

func TestLoadConfigMissingEnvironmentVariable(t *testing.T) {
	os.Unsetenv(testDBPassword)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	if cfg.Postgres.Password != "" {
		t.Errorf("expected empty password, got '%s'", cfg.Postgres.Password)
	}
}

func TestValidateSuccess(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.App.Environment = "staging"
	cfg.App.LogLevel = "warn"

	if err := Validate(cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

func TestValidateNilConfig(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error(expectedValidationError)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero stake", func(c *Config) { c.Backtest.Stake = 0 }, "Stake"},
		{"negative stake", func(c *Config) { c.Backtest.Stake = -5 }, "Stake"},
		{"invalid environment", func(c *Config) { c.App.Environment = "invalid" }, "Environment"},
		{"invalid log level", func(c *Config) { c.App.LogLevel = "trace" }, "LogLevel"},
		{"no csv files", func(c *Config) { c.CSV.Files = nil }, "Files"},
		{"blank home team", func(c *Config) { c.CSV.HomeTeams = []string{""} }, "HomeTeams"},
		{"empty odds priority", func(c *Config) { c.CSV.OddsPriority = []string{} }, "OddsPriority"},
		{"unknown driver", func(c *Config) { c.SQL.Driver = "mysql" }, "Driver"},
		{"injected table", func(c *Config) { c.SQL.Table = "betfront; DROP TABLE x" }, "Table"},
		{"zero home odd max", func(c *Config) { c.SQL.HomeOddMax = 0 }, "HomeOddMax"},
		{"secrets without region", func(c *Config) { c.Secrets.AWSEnabled = true; c.Secrets.SecretName = "s" }, "Region"},
		{"metrics without path", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.TextfilePath = "" }, "TextfilePath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadDefaults(t)
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal(expectedValidationError)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestValidatePostgresCrossField(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.SQL.Driver = "postgres"
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected default postgres settings to validate, got %v", err)
	}

	cfg.Postgres.Host = ""
	if err := Validate(cfg); err == nil {
		t.Error("expected error for missing postgres host")
	}

	cfg = loadDefaults(t)
	cfg.SQL.Driver = "postgres"
	cfg.App.Environment = "production"
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "ssl_mode") {
		t.Errorf("expected ssl_mode error in production, got %v", err)
	}

	cfg.Postgres.SSLMode = "require"
	if err := Validate(cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: developmentEnv}}
	if cfg.IsProduction() {
		t.Error("expected development environment")
	}

	cfg.App.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}

	if cfg.UsesPostgres() {
		t.Error("expected sqlite driver by default")
	}
	cfg.SQL.Driver = "postgres"
	if !cfg.UsesPostgres() {
		t.Error("expected postgres driver")
	}
}

func TestParseSecretData(t *testing.T) {
	secrets, err := parseSecretData(&secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"database_password":"s3cret","database_user":"analyst"}`),
	})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if secrets.DatabasePassword != "s3cret" || secrets.DatabaseUser != "analyst" {
		t.Errorf("unexpected secrets: %+v", secrets)
	}

	secrets, err = parseSecretData(&secretsmanager.GetSecretValueOutput{
		SecretBinary: []byte(`{"database_password":"bin"}`),
	})
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}
	if secrets.DatabasePassword != "bin" {
		t.Errorf("expected binary password 'bin', got '%s'", secrets.DatabasePassword)
	}

	if _, err := parseSecretData(&secretsmanager.GetSecretValueOutput{}); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := parseSecretData(&secretsmanager.GetSecretValueOutput{SecretString: aws.String("{")}); err == nil {
		t.Error("expected error for malformed secret JSON")
	}
}

func TestOverlaySecretsOnConfig(t *testing.T) {
	cfg := &Config{Postgres: PostgresConfig{User: "postgres", Password: "old"}}

	overlaySecretsOnConfig(cfg, &SecretsOverlay{DatabasePassword: "new"})

	if cfg.Postgres.Password != "new" {
		t.Errorf("expected overlaid password, got '%s'", cfg.Postgres.Password)
	}
	if cfg.Postgres.User != "postgres" {
		t.Errorf("expected user untouched, got '%s'", cfg.Postgres.User)
	}
}

func TestLoadSecretsFromAWSDisabled(t *testing.T) {
	cfg := &Config{}
	if err := LoadSecretsFromAWS(t.Context(), cfg); err != nil {
		t.Errorf(expectedNoErrorMsg, err)
	}
}
