package datasource

import (
	"fmt"
	"strconv"
	"time"
)

// QueryFilter is pushed down into the relational query so LIMIT applies to qualifying rows
type QueryFilter struct {
	HomeOddMax float64
	AwayOddMin float64
	Limit      int // zero or negative means no limit
}

func (f QueryFilter) sqliteLimit() int {
	if f.Limit <= 0 {
		return -1
	}
	return f.Limit
}

func (f QueryFilter) postgresLimit() *int {
	if f.Limit <= 0 {
		return nil
	}
	limit := f.Limit
	return &limit
}

// rowFromValues maps relational query values onto the relational column names
func rowFromValues(values []any) Row {
	row := make(Row, len(relationalColumns))
	for i, column := range relationalColumns {
		if i >= len(values) {
			break
		}
		row[column] = formatValue(values[i])
	}
	return row
}

func tableRowFromValues(values []any) *TableRow {
	get := func(i int) string {
		if i >= len(values) {
			return ""
		}
		return formatValue(values[i])
	}
	return &TableRow{
		Date:        get(0),
		Time:        get(1),
		Label:       get(2),
		HomeGoals:   get(3),
		AwayGoals:   get(4),
		HomeOdd:     get(5),
		DrawOdd:     get(6),
		AwayOdd:     get(7),
		RawDateTime: get(8),
	}
}

// formatValue renders a driver value as the raw text the normalizer expects
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(t)
	}
}
