package backtest

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/config"
)

// BacktestConfig holds the settings shared by every run
type BacktestConfig struct {
	Stake    decimal.Decimal
	MaxPrint int // negative prints every ledger row
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.BacktestConfig) (BacktestConfig, error) {
	if cfg == nil {
		return BacktestConfig{}, fmt.Errorf("backtest config is required")
	}

	bt := BacktestConfig{
		Stake:    decimal.NewFromFloat(cfg.Stake),
		MaxPrint: cfg.MaxPrint,
	}

	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (b BacktestConfig) Validate() error {
	if !b.Stake.IsPositive() {
		return fmt.Errorf("stake must be positive")
	}
	return nil
}

// PrintsRow reports whether the ledger row at zero-based position i is displayed
func (b BacktestConfig) PrintsRow(i int) bool {
	return b.MaxPrint < 0 || i < b.MaxPrint
}
