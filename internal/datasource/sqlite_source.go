package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

const sqliteMatchesQuery = `
	SELECT
		DATE(DATETIME) AS MATCH_DATE,
		TIME(DATETIME) AS MATCH_TIME,
		"MATCH",
		HOME_CLOSING,
		DRAW_CLOSING,
		AWAY_CLOSING,
		FTG1,
		FTG2
	FROM %s
	WHERE
		HOME_CLOSING <= ? AND
		AWAY_CLOSING > ? AND
		FTG1 IS NOT NULL AND FTG2 IS NOT NULL
	ORDER BY DATETIME
	LIMIT ?
`

const sqliteExtremeQuery = `
	SELECT DATE(DATETIME), TIME(DATETIME), "MATCH", FTG1, FTG2,
	       HOME_CLOSING, DRAW_CLOSING, AWAY_CLOSING, DATETIME
	FROM %s
	WHERE DATETIME IS NOT NULL
	ORDER BY DATETIME %s
	LIMIT 1
`

// SQLiteSource reads matches from a SQLite table through modernc.org/sqlite
type SQLiteSource struct {
	path   string
	table  string
	filter QueryFilter
}

// NewSQLiteSource creates a SQLite source. table must already be a validated identifier.
func NewSQLiteSource(path, table string, filter QueryFilter) *SQLiteSource {
	return &SQLiteSource{path: path, table: table, filter: filter}
}

// Name returns the source name
func (s *SQLiteSource) Name() string {
	return "sqlite:" + s.table
}

// Type returns the source family
func (s *SQLiteSource) Type() string {
	return "sqlite"
}

// Path returns the database file path
func (s *SQLiteSource) Path() string {
	return s.path
}

func (s *SQLiteSource) open() (*sql.DB, error) {
	// sql.Open would create a missing file, which then fails with "no such table"
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, "database file not found: "+s.path, fmt.Errorf("%w: %w", ErrNotFound, err))
		}
		return nil, NewDataSourceError(s.Name(), ErrCodeInvalidData, "cannot stat database file", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "open sqlite", err)
	}
	return db, nil
}

// Load runs the filtered, chronologically ordered match query
func (s *SQLiteSource) Load(ctx context.Context) (*RowSet, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf(sqliteMatchesQuery, s.table)
	rows, err := db.QueryContext(ctx, query, s.filter.HomeOddMax, s.filter.AwayOddMin, s.filter.sqliteLimit())
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "matches query failed", err)
	}
	defer rows.Close()

	result := &RowSet{
		Source:  s.Name(),
		Columns: append([]string(nil), relationalColumns...),
		Schema:  RelationalSchema(),
		Ordered: true,
	}
	for rows.Next() {
		values, err := scanValues(rows, len(relationalColumns))
		if err != nil {
			return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "failed to scan match", err)
		}
		result.Rows = append(result.Rows, rowFromValues(values))
	}
	if err := rows.Err(); err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "matches query failed", err)
	}

	return result, nil
}

// Extremes returns the oldest and newest matches of the table. A nil row means the table
// had no dated match.
func (s *SQLiteSource) Extremes(ctx context.Context) (*TableRow, *TableRow, error) {
	db, err := s.open()
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	oldest, err := s.extreme(ctx, db, "ASC")
	if err != nil {
		return nil, nil, err
	}
	newest, err := s.extreme(ctx, db, "DESC")
	if err != nil {
		return nil, nil, err
	}
	return oldest, newest, nil
}

func (s *SQLiteSource) extreme(ctx context.Context, db *sql.DB, direction string) (*TableRow, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(sqliteExtremeQuery, s.table, direction))
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "extremes query failed", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "extremes query failed", err)
		}
		return nil, nil
	}
	values, err := scanValues(rows, 9)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "failed to scan match", err)
	}
	return tableRowFromValues(values), nil
}

func scanValues(rows *sql.Rows, n int) ([]any, error) {
	values := make([]any, n)
	dest := make([]any, n)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return values, nil
}
