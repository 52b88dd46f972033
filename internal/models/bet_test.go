package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultFromScore(t *testing.T) {
	assert.Equal(t, ResultWin, ResultFromScore(2, 1))
	assert.Equal(t, ResultDraw, ResultFromScore(0, 0))
	assert.Equal(t, ResultLoss, ResultFromScore(1, 3))
	assert.True(t, ResultWin.IsWin())
	assert.False(t, ResultDraw.IsWin())
}

func TestMatchRecordDisplay(t *testing.T) {
	record := MatchRecord{HomeTeam: "Real Madrid", AwayTeam: "Getafe", HomeGoals: 3, AwayGoals: 0}
	assert.Equal(t, "3-0", record.Score())
	assert.Equal(t, "Real Madrid - Getafe", record.DisplayName())

	record.Label = "Real Madrid v Getafe"
	assert.Equal(t, "Real Madrid v Getafe", record.DisplayName())
}
