package datasource

import (
	"context"
	"errors"
	"strings"
)

// Source loads one bounded set of raw match rows
type Source interface {
	// Name identifies the source in logs and in MatchRecord.Source
	Name() string

	// Type is the source family used as a metrics label ("csv", "sqlite", "postgres")
	Type() string

	// Load reads the complete row set. Failures are SourceUnavailable: callers warn and skip.
	Load(ctx context.Context) (*RowSet, error)
}

// TableInspector reports the oldest and newest matches of a relational table
type TableInspector interface {
	Extremes(ctx context.Context) (oldest, newest *TableRow, err error)
}

// RelationalSource is a Source backed by a match table
type RelationalSource interface {
	Source
	TableInspector
}

// Row maps a column name to its raw text. Absent columns read as empty.
type Row map[string]string

// Get returns the raw value of a field, or "" when absent
func (r Row) Get(field string) string {
	return r[field]
}

// Has reports whether the field is present in the row
func (r Row) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// FirstNonEmpty returns the first candidate field with a non-empty value
func (r Row) FirstNonEmpty(fields []string) string {
	for _, field := range fields {
		if v := r[field]; v != "" {
			return v
		}
	}
	return ""
}

// RowSet is everything one source produced
type RowSet struct {
	Source  string
	Columns []string
	Rows    []Row
	Schema  Schema
	// Ordered is set when the store already returned the rows chronologically
	Ordered bool
}

// TableRow is an unfiltered match row used for table inspection
type TableRow struct {
	Date        string
	Time        string
	Label       string
	HomeGoals   string
	AwayGoals   string
	HomeOdd     string
	DrawOdd     string
	AwayOdd     string
	RawDateTime string
}

// HasScore reports whether both goal columns were filled
func (r TableRow) HasScore() bool {
	return strings.TrimSpace(r.HomeGoals) != "" && strings.TrimSpace(r.AwayGoals) != ""
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "not_found")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeNetworkError = "network_error"
	ErrCodeServerError  = "server_error"
	ErrCodeQueryFailed  = "query_failed"
)

// Error constructors
var (
	ErrNotFound       = errors.New("data not found")
	ErrMemberNotFound = errors.New("archive member not found")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
