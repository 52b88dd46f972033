// Package config provides configuration management for the home-edge back-tester.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides (HOME_EDGE_BACKTEST_STAKE)
const EnvPrefix = "HOME_EDGE"

// DefaultConfigPath is used when no path is given
const DefaultConfigPath = "config/config.yaml"

// Load reads the configuration from a file that must exist, on top of the built-in
// defaults and environment variables. It expands placeholders (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	setDefaults(v)
	if err := readExpanded(v, data); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration on top of built-in defaults. A missing file is
// not an error: defaults and environment variables are used instead.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := readExpanded(v, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func readExpanded(v *viper.Viper, data []byte) error {
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults mirrors the shipped strategy: La Liga and Bundesliga giants at home,
// skipping their direct rivals, 5 units per bet.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "home-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("backtest.stake", 5.0)
	v.SetDefault("backtest.max_print", -1)

	v.SetDefault("csv.files", []string{
		"SP1_2425.csv", "SP1_2324.csv", "SP1_2223.csv",
		"D1_2425.csv", "D1_2324.csv", "D1_2223.csv",
	})
	v.SetDefault("csv.home_teams", []string{"Real Madrid", "Bayern Munich"})
	v.SetDefault("csv.exclude_opponents", []string{
		"Barcelona", "Ath Madrid", "Valencia", "Real Madrid", "Dortmund", "Leverkusen",
	})
	v.SetDefault("csv.odds_priority", []string{"B365CH", "B365H", "PSH", "PH", "AvgH", "MaxH"})
	v.SetDefault("csv.http.timeout_seconds", 30)
	v.SetDefault("csv.http.max_retries", 3)
	v.SetDefault("csv.http.rate_limit", 2.0)
	v.SetDefault("csv.http.circuit_breaker_max", 5)

	v.SetDefault("sql.driver", "sqlite")
	v.SetDefault("sql.table", "betfront")
	v.SetDefault("sql.home_odd_max", 1.5)
	v.SetDefault("sql.away_odd_min", 5.0)
	v.SetDefault("sql.limit", 100)

	v.SetDefault("sqlite.path", "database.sqlite")
	v.SetDefault("sqlite.archive_path", "database.zip")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.name", "betting")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_connections", 4)

	v.SetDefault("secrets.aws_enabled", false)
	v.SetDefault("secrets.region", "")
	v.SetDefault("secrets.secret_name", "")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "./output/home_edge.prom")
}
