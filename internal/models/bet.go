package models

import (
	"github.com/shopspring/decimal"
)

// Result is the match outcome from the home side's point of view
type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

// ResultFromScore compares home and away goals
func ResultFromScore(homeGoals, awayGoals int) Result {
	switch {
	case homeGoals > awayGoals:
		return ResultWin
	case homeGoals == awayGoals:
		return ResultDraw
	default:
		return ResultLoss
	}
}

// IsWin reports whether the home bet paid out
func (r Result) IsWin() bool {
	return r == ResultWin
}

// BetOutcome is the settled fixed-stake home bet for one match
type BetOutcome struct {
	Result       Result          `json:"result"`
	Profit       decimal.Decimal `json:"profit"`
	RunningTotal decimal.Decimal `json:"running_total"`
}
