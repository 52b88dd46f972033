package datasource

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/home-edge/internal/config"
	"github.com/yourusername/home-edge/internal/database"
)

const postgresMatchesQuery = `
	SELECT
		to_char(datetime, 'YYYY-MM-DD') AS match_date,
		to_char(datetime, 'HH24:MI:SS') AS match_time,
		match,
		home_closing::float8,
		draw_closing::float8,
		away_closing::float8,
		ftg1::int8,
		ftg2::int8
	FROM %s
	WHERE
		home_closing <= $1 AND
		away_closing > $2 AND
		ftg1 IS NOT NULL AND ftg2 IS NOT NULL
	ORDER BY datetime
	LIMIT $3
`

const postgresExtremeQuery = `
	SELECT to_char(datetime, 'YYYY-MM-DD'), to_char(datetime, 'HH24:MI:SS'), match,
	       ftg1::int8, ftg2::int8,
	       home_closing::float8, draw_closing::float8, away_closing::float8,
	       datetime::text
	FROM %s
	WHERE datetime IS NOT NULL
	ORDER BY datetime %s
	LIMIT 1
`

// PostgresSource reads matches from a PostgreSQL table with the same shape as the
// SQLite one (unquoted, so column names fold to lower case).
type PostgresSource struct {
	cfg    config.PostgresConfig
	table  string
	filter QueryFilter
}

// NewPostgresSource creates a PostgreSQL source. table must already be a validated identifier.
func NewPostgresSource(cfg config.PostgresConfig, table string, filter QueryFilter) *PostgresSource {
	return &PostgresSource{cfg: cfg, table: table, filter: filter}
}

// Name returns the source name
func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

// Type returns the source family
func (s *PostgresSource) Type() string {
	return "postgres"
}

func (s *PostgresSource) connect(ctx context.Context) (*database.DB, error) {
	db, err := database.NewDB(ctx, &s.cfg)
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "connect postgres", err)
	}
	return db, nil
}

// Load runs the filtered, chronologically ordered match query
func (s *PostgresSource) Load(ctx context.Context) (*RowSet, error) {
	db, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf(postgresMatchesQuery, s.table)
	rows, err := db.Query(ctx, query, s.filter.HomeOddMax, s.filter.AwayOddMin, s.filter.postgresLimit())
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
		values, err := rows.Values()
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

// Extremes returns the oldest and newest matches of the table
func (s *PostgresSource) Extremes(ctx context.Context) (*TableRow, *TableRow, error) {
	db, err := s.connect(ctx)
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

func (s *PostgresSource) extreme(ctx context.Context, db *database.DB, direction string) (*TableRow, error) {
	rows, err := db.Query(ctx, fmt.Sprintf(postgresExtremeQuery, s.table, direction))
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "extremes query failed", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "extremes query failed", err)
		}
		return nil, nil
	}
	values, err := rows.Values()
	if err != nil {
		return nil, NewDataSourceError(s.Name(), ErrCodeQueryFailed, "failed to scan match", err)
	}
	return tableRowFromValues(values), nil
}
