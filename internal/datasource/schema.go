package datasource

// Football-Data CSV columns
const (
	ColumnDate     = "Date"
	ColumnTime     = "Time"
	ColumnHomeTeam = "HomeTeam"
	ColumnAwayTeam = "AwayTeam"
	ColumnFTHG     = "FTHG"
	ColumnHG       = "HG"
	ColumnFTAG     = "FTAG"
	ColumnAG       = "AG"
)

// Relational table columns. Date and time are derived from DATETIME by the query.
const (
	ColumnMatchDate   = "MATCH_DATE"
	ColumnMatchTime   = "MATCH_TIME"
	ColumnMatch       = "MATCH"
	ColumnHomeClosing = "HOME_CLOSING"
	ColumnDrawClosing = "DRAW_CLOSING"
	ColumnAwayClosing = "AWAY_CLOSING"
	ColumnFTG1        = "FTG1"
	ColumnFTG2        = "FTG2"
)

// DefaultOddsPriority is the Football-Data home-win odds preference
var DefaultOddsPriority = []string{"B365CH", "B365H", "PSH", "PH", "AvgH", "MaxH"}

// Schema tells the normalizer where each match field lives in a row set
type Schema struct {
	HomeTeamField  string
	AwayTeamField  string
	LabelField     string // when set, teams are split out of the match label
	HomeGoalFields []string
	AwayGoalFields []string
	DateField      string
	TimeField      string
	HomeOddFields  []string // resolved in priority order
	AwayOddFields  []string
}

// FootballDataSchema describes Football-Data CSV files
func FootballDataSchema(oddsPriority []string) Schema {
	priority := make([]string, len(oddsPriority))
	copy(priority, oddsPriority)
	return Schema{
		HomeTeamField:  ColumnHomeTeam,
		AwayTeamField:  ColumnAwayTeam,
		HomeGoalFields: []string{ColumnFTHG, ColumnHG},
		AwayGoalFields: []string{ColumnFTAG, ColumnAG},
		DateField:      ColumnDate,
		TimeField:      ColumnTime,
		HomeOddFields:  priority,
	}
}

// RelationalSchema describes rows produced by the SQLite and PostgreSQL sources
func RelationalSchema() Schema {
	return Schema{
		LabelField:     ColumnMatch,
		HomeGoalFields: []string{ColumnFTG1},
		AwayGoalFields: []string{ColumnFTG2},
		DateField:      ColumnMatchDate,
		TimeField:      ColumnMatchTime,
		HomeOddFields:  []string{ColumnHomeClosing},
		AwayOddFields:  []string{ColumnAwayClosing},
	}
}

var relationalColumns = []string{
	ColumnMatchDate, ColumnMatchTime, ColumnMatch,
	ColumnHomeClosing, ColumnDrawClosing, ColumnAwayClosing,
	ColumnFTG1, ColumnFTG2,
}
