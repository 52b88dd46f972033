package strategy

import (
	"sort"
	"strings"
)

// TeamCriteria backs a fixed set of home teams, skipping excluded opponents
type TeamCriteria struct {
	allowedHome  map[string]struct{}
	excludedAway map[string]struct{}
}

// NewTeamCriteria builds the criteria from plain name lists. Names are trimmed and
// blanks dropped.
func NewTeamCriteria(allowedHome, excludedAway []string) *TeamCriteria {
	return &TeamCriteria{
		allowedHome:  toSet(allowedHome),
		excludedAway: toSet(excludedAway),
	}
}

// Name returns criteria name
func (c *TeamCriteria) Name() string {
	return "team_filter"
}

// Accept implements Criteria
func (c *TeamCriteria) Accept(candidate Candidate) bool {
	if _, ok := c.allowedHome[candidate.HomeTeam]; !ok {
		return false
	}
	if _, excluded := c.excludedAway[candidate.AwayTeam]; excluded {
		return false
	}
	return true
}

// AllowedHome returns the sorted allow-list
func (c *TeamCriteria) AllowedHome() []string {
	return sortedKeys(c.allowedHome)
}

// ExcludedAway returns the sorted exclude-list
func (c *TeamCriteria) ExcludedAway() []string {
	return sortedKeys(c.excludedAway)
}

// Parameters returns the criteria settings for logging
func (c *TeamCriteria) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"home_teams":        c.AllowedHome(),
		"exclude_opponents": c.ExcludedAway(),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
