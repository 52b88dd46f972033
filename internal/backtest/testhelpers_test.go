package backtest

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func record(date, clock, home, away string, homeGoals, awayGoals int, odd string) models.MatchRecord {
	return models.MatchRecord{
		Date:      date,
		Time:      clock,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: homeGoals,
		AwayGoals: awayGoals,
		HomeOdd:   dec(odd),
		OddSource: "B365H",
	}
}

// scenarioRecords is a win at 2.0, a draw at 3.0 and a loss at 1.5
func scenarioRecords() []models.MatchRecord {
	return []models.MatchRecord{
		record("01/09/24", "20:00", "Real Madrid", "Getafe", 2, 1, "2.0"),
		record("08/09/24", "18:30", "Real Madrid", "Sevilla", 1, 1, "3.0"),
		record("15/09/24", "21:00", "Real Madrid", "Betis", 0, 2, "1.5"),
	}
}
