package strategy

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/models"
)

var one = decimal.NewFromInt(1)

// SettleHomeBet settles a fixed-stake back bet on the home side.
// A win returns (odd - 1) * stake; draws and losses both lose the stake.
func SettleHomeBet(record models.MatchRecord, stake decimal.Decimal) (models.Result, decimal.Decimal) {
	result := models.ResultFromScore(record.HomeGoals, record.AwayGoals)
	if result.IsWin() {
		return result, record.HomeOdd.Sub(one).Mul(stake)
	}
	return result, stake.Neg()
}
