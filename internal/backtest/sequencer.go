package backtest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/home-edge/internal/models"
)

const defaultClock = "00:00"

// SortKey orders matches chronologically
type SortKey struct {
	Year  int
	Month int
	Day   int
	Clock string // first five characters of the kick-off time, compared as text
}

// SortKeyFor builds the key from a dd/mm/yy or dd/mm/yyyy date and an optional HH:MM time.
// Two-digit years are read as 20yy. Unparsable dates sort after everything else.
func SortKeyFor(date, clock string) SortKey {
	if clock == "" {
		clock = defaultClock
	}
	if runes := []rune(clock); len(runes) > 5 {
		clock = string(runes[:5])
	}

	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return SortKey{Year: 9999, Month: 12, Day: 31, Clock: clock}
	}
	var nums [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return SortKey{Year: 9999, Month: 12, Day: 31, Clock: clock}
		}
		nums[i] = v
	}

	year := nums[2]
	if year < 100 {
		year += 2000
	}
	return SortKey{Year: year, Month: nums[1], Day: nums[0], Clock: clock}
}

// Less compares keys field by field
func (k SortKey) Less(other SortKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	if k.Day != other.Day {
		return k.Day < other.Day
	}
	return k.Clock < other.Clock
}

// Sequence returns a new slice of records in chronological order. Records with equal keys
// keep their input order.
func Sequence(records []models.MatchRecord) []models.MatchRecord {
	type keyed struct {
		key    SortKey
		record models.MatchRecord
	}

	items := make([]keyed, len(records))
	for i, record := range records {
		items[i] = keyed{key: SortKeyFor(record.Date, record.Time), record: record}
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].key.Less(items[b].key)
	})

	out := make([]models.MatchRecord, len(items))
	for i, item := range items {
		out[i] = item.record
	}
	return out
}
