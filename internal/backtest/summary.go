package backtest

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the aggregate figures of a ledger
type Summary struct {
	TotalMatches int
	Wins         int
	Draws        int
	Losses       int
	Stake        decimal.Decimal
	Invested     decimal.Decimal
	NetProfit    decimal.Decimal
	ROI          decimal.Decimal // percent of invested
	WinRate      decimal.Decimal // percent of matches
}

// Summarize derives the aggregate figures. ROI and win rate are zero for an empty ledger.
func Summarize(ledger *Ledger) Summary {
	if ledger == nil {
		return Summary{}
	}

	total := ledger.Len()
	summary := Summary{
		TotalMatches: total,
		Wins:         ledger.Wins,
		Draws:        ledger.Draws,
		Losses:       ledger.Losses,
		Stake:        ledger.Stake,
		Invested:     decimal.Zero,
		NetProfit:    ledger.NetProfit,
		ROI:          decimal.Zero,
		WinRate:      decimal.Zero,
	}
	if total == 0 {
		return summary
	}

	matches := decimal.NewFromInt(int64(total))
	summary.Invested = matches.Mul(ledger.Stake)
	if !summary.Invested.IsZero() {
		summary.ROI = ledger.NetProfit.Div(summary.Invested).Mul(hundred)
	}
	summary.WinRate = decimal.NewFromInt(int64(ledger.Wins)).Div(matches).Mul(hundred)

	return summary
}
