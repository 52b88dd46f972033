// Package config provides configuration management for the home-edge back-tester.
package config

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Backtest BacktestConfig `mapstructure:"backtest" validate:"required"`
	CSV      CSVConfig      `mapstructure:"csv" validate:"required"`
	SQL      SQLConfig      `mapstructure:"sql" validate:"required"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Secrets  SecretsConfig  `mapstructure:"secrets"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// BacktestConfig represents the betting simulation settings shared by every run
type BacktestConfig struct {
	Stake    float64 `mapstructure:"stake" validate:"required,gt=0"`
	MaxPrint int     `mapstructure:"max_print"` // negative prints every ledger row
}

// CSVConfig represents the Football-Data file run
type CSVConfig struct {
	Files            []string   `mapstructure:"files" validate:"required,min=1,dive,required"`
	HomeTeams        []string   `mapstructure:"home_teams" validate:"required,min=1,dive,required"`
	ExcludeOpponents []string   `mapstructure:"exclude_opponents"`
	OddsPriority     []string   `mapstructure:"odds_priority" validate:"required,min=1,dive,required"`
	HTTP             HTTPConfig `mapstructure:"http"`
}

// HTTPConfig controls downloads of remote CSV files
type HTTPConfig struct {
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
}

// SQLConfig represents the relational run
type SQLConfig struct {
	Driver     string  `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	Table      string  `mapstructure:"table" validate:"required,sqlident"`
	HomeOddMax float64 `mapstructure:"home_odd_max" validate:"gt=0"`
	AwayOddMin float64 `mapstructure:"away_odd_min" validate:"gte=0"`
	Limit      int     `mapstructure:"limit"` // zero or negative means no limit
}

// SQLiteConfig locates the SQLite database and the archive it ships in
type SQLiteConfig struct {
	Path        string `mapstructure:"path" validate:"required"`
	ArchivePath string `mapstructure:"archive_path"`
}

// PostgresConfig represents PostgreSQL connection configuration
type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// SecretsConfig enables the AWS Secrets Manager overlay
type SecretsConfig struct {
	AWSEnabled bool   `mapstructure:"aws_enabled"`
	Region     string `mapstructure:"region" validate:"required_if=AWSEnabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=AWSEnabled true"`
}

// MetricsConfig represents metrics export configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// UsesPostgres reports whether relational runs go to PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.SQL.Driver == "postgres"
}
