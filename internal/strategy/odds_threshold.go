package strategy

import (
	"github.com/shopspring/decimal"
)

// OddsThresholdCriteria backs home favourites: home odd at most HomeOddMax and away
// odd strictly above AwayOddMin.
type OddsThresholdCriteria struct {
	HomeOddMax decimal.Decimal
	AwayOddMin decimal.Decimal
}

// NewOddsThresholdCriteria creates threshold criteria
func NewOddsThresholdCriteria(homeOddMax, awayOddMin decimal.Decimal) *OddsThresholdCriteria {
	return &OddsThresholdCriteria{HomeOddMax: homeOddMax, AwayOddMin: awayOddMin}
}

// Name returns criteria name
func (c *OddsThresholdCriteria) Name() string {
	return "odds_threshold"
}

// Accept implements Criteria. A candidate without an away odd cannot be judged and is rejected.
func (c *OddsThresholdCriteria) Accept(candidate Candidate) bool {
	if !candidate.AwayOdd.Valid {
		return false
	}
	if candidate.HomeOdd.GreaterThan(c.HomeOddMax) {
		return false
	}
	return candidate.AwayOdd.Decimal.GreaterThan(c.AwayOddMin)
}

// Parameters returns the criteria settings for logging
func (c *OddsThresholdCriteria) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"home_odd_max": c.HomeOddMax.String(),
		"away_odd_min": c.AwayOddMin.String(),
	}
}
