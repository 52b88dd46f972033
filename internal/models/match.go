package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// MatchRecord is one historical match that qualified for a home-win bet
type MatchRecord struct {
	Source    string              `json:"source"`
	Date      string              `json:"date"`
	Time      string              `json:"time"`
	Label     string              `json:"label,omitempty"` // match label when the source carries one
	HomeTeam  string              `json:"home_team"`
	AwayTeam  string              `json:"away_team"`
	HomeGoals int                 `json:"home_goals"`
	AwayGoals int                 `json:"away_goals"`
	HomeOdd   decimal.Decimal     `json:"home_odd"`
	AwayOdd   decimal.NullDecimal `json:"away_odd"`
	OddSource string              `json:"odd_source"` // column the home odd was read from
}

// Score returns the final score as "home-away"
func (m MatchRecord) Score() string {
	return strconv.Itoa(m.HomeGoals) + "-" + strconv.Itoa(m.AwayGoals)
}

// DisplayName returns the match label, or "Home - Away" when the source had none
func (m MatchRecord) DisplayName() string {
	if m.Label != "" {
		return m.Label
	}
	return m.HomeTeam + " - " + m.AwayTeam
}
