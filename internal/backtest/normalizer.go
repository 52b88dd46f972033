package backtest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/datasource"
	"github.com/yourusername/home-edge/internal/models"
	"github.com/yourusername/home-edge/internal/strategy"
)

// Match labels are split on the first separator found, in this order
var labelSeparators = []string{" - ", " vs ", " v ", " x "}

// Rejection reasons used as log fields and metric labels
const (
	ReasonAccepted       = "accepted"
	ReasonMissingTeam    = "missing_team"
	ReasonMalformedScore = "malformed_score"
	ReasonNoOdds         = "no_odds"
	ReasonFiltered       = "filtered"
	ReasonOther          = "other"
)

// Normalizer turns raw rows into qualifying match records
type Normalizer struct {
	schema   datasource.Schema
	criteria strategy.Criteria
}

// NewNormalizer creates a normalizer for one row set layout
func NewNormalizer(schema datasource.Schema, criteria strategy.Criteria) *Normalizer {
	return &Normalizer{schema: schema, criteria: criteria}
}

// Normalize validates one row and applies the criteria. The returned error is one of the
// models rejection sentinels (wrapped) when the row does not qualify.
func (n *Normalizer) Normalize(source string, row datasource.Row) (models.MatchRecord, error) {
	home, away, label := n.teams(row)
	if home == "" || (away == "" && label == "") {
		return models.MatchRecord{}, models.ErrMissingTeam
	}

	homeGoals, err := parseGoals(row.FirstNonEmpty(n.schema.HomeGoalFields))
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("%w: home goals: %v", models.ErrMalformedScore, err)
	}
	awayGoals, err := parseGoals(row.FirstNonEmpty(n.schema.AwayGoalFields))
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("%w: away goals: %v", models.ErrMalformedScore, err)
	}

	column, homeOdd, ok := ResolveOdd(row, n.schema.HomeOddFields)
	if !ok {
		return models.MatchRecord{}, models.ErrNoOdds
	}

	var awayOdd decimal.NullDecimal
	if len(n.schema.AwayOddFields) > 0 {
		if _, odd, ok := ResolveOdd(row, n.schema.AwayOddFields); ok {
			awayOdd = decimal.NewNullDecimal(odd)
		}
	}

	candidate := strategy.Candidate{
		HomeTeam: home,
		AwayTeam: away,
		HomeOdd:  homeOdd,
		AwayOdd:  awayOdd,
	}
	if n.criteria != nil && !n.criteria.Accept(candidate) {
		return models.MatchRecord{}, models.ErrFiltered
	}

	return models.MatchRecord{
		Source:    source,
		Date:      row.Get(n.schema.DateField),
		Time:      row.Get(n.schema.TimeField),
		Label:     label,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		HomeOdd:   homeOdd,
		AwayOdd:   awayOdd,
		OddSource: column,
	}, nil
}

func (n *Normalizer) teams(row datasource.Row) (home, away, label string) {
	if n.schema.LabelField != "" {
		label = strings.TrimSpace(row.Get(n.schema.LabelField))
		if label == "" {
			return "", "", ""
		}
		if home, away = SplitLabel(label); home == "" || away == "" {
			// unsplittable labels still name the fixture
			return label, "", label
		}
		return home, away, label
	}
	return strings.TrimSpace(row.Get(n.schema.HomeTeamField)), strings.TrimSpace(row.Get(n.schema.AwayTeamField)), ""
}

// SplitLabel splits "Home - Away" (also "Home vs Away", "Home v Away", "Home x Away") into
// team names. Both names are empty when the label has no separator.
func SplitLabel(label string) (home, away string) {
	for _, sep := range labelSeparators {
		if h, a, found := strings.Cut(label, sep); found {
			return strings.TrimSpace(h), strings.TrimSpace(a)
		}
	}
	return "", ""
}

func parseGoals(raw string) (int, error) {
	goals, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if goals < 0 {
		return 0, fmt.Errorf("negative goal count %d", goals)
	}
	return goals, nil
}

// RejectionReason maps a Normalize error onto its reason label
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ReasonAccepted
	case errors.Is(err, models.ErrMissingTeam):
		return ReasonMissingTeam
	case errors.Is(err, models.ErrMalformedScore):
		return ReasonMalformedScore
	case errors.Is(err, models.ErrNoOdds):
		return ReasonNoOdds
	case errors.Is(err, models.ErrFiltered):
		return ReasonFiltered
	default:
		return ReasonOther
	}
}
