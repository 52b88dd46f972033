package models

import "errors"

// Row rejection reasons. Rejections are discarded silently by callers.
var (
	ErrMissingTeam    = errors.New("missing team name")
	ErrMalformedScore = errors.New("malformed final score")
	ErrNoOdds         = errors.New("no usable home odd")
	ErrFiltered       = errors.New("rejected by filter criteria")
)
