package strategy

import (
	"github.com/shopspring/decimal"
)

// Criteria decides whether a normalized match is eligible for the home-win bet.
// File-based runs filter on team names, relational runs on odds thresholds.
type Criteria interface {
	Name() string
	Accept(candidate Candidate) bool
	Parameters() map[string]interface{}
}

// Candidate carries the fields criteria are allowed to look at
type Candidate struct {
	HomeTeam string
	AwayTeam string
	HomeOdd  decimal.Decimal
	AwayOdd  decimal.NullDecimal
}
