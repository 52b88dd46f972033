package datasource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// CSVSource reads one Football-Data CSV file from disk or over HTTP
type CSVSource struct {
	location     string
	oddsPriority []string
	httpClient   *RateLimitedHTTPClient
}

// NewCSVSource creates a CSV source. Locations starting with http:// or https:// are
// downloaded with httpClient, anything else is opened as a local path.
func NewCSVSource(location string, oddsPriority []string, httpClient *RateLimitedHTTPClient) *CSVSource {
	return &CSVSource{
		location:     location,
		oddsPriority: oddsPriority,
		httpClient:   httpClient,
	}
}

// Name returns the file path or URL
func (s *CSVSource) Name() string {
	return s.location
}

// Type returns the source family
func (s *CSVSource) Type() string {
	return "csv"
}

// IsRemote reports whether the location is an http(s) URL
func (s *CSVSource) IsRemote() bool {
	return isRemoteLocation(s.location)
}

// Load reads and parses the whole file
func (s *CSVSource) Load(ctx context.Context) (*RowSet, error) {
	reader, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	columns, rows, err := ParseCSV(reader)
	if err != nil {
		return nil, NewDataSourceError(s.location, ErrCodeInvalidData, "failed to parse csv", err)
	}

	return &RowSet{
		Source:  s.location,
		Columns: columns,
		Rows:    rows,
		Schema:  FootballDataSchema(s.oddsPriority),
	}, nil
}

func (s *CSVSource) open(ctx context.Context) (io.ReadCloser, error) {
	if !s.IsRemote() {
		f, err := os.Open(s.location)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, NewDataSourceError(s.location, ErrCodeNotFound, "file not found", fmt.Errorf("%w: %w", ErrNotFound, err))
			}
			return nil, NewDataSourceError(s.location, ErrCodeInvalidData, "failed to open file", err)
		}
		return f, nil
	}

	if s.httpClient == nil {
		return nil, NewDataSourceError(s.location, ErrCodeNetworkError, "no http client configured", nil)
	}
	resp, err := s.httpClient.Get(ctx, s.location)
	if err != nil {
		return nil, NewDataSourceError(s.location, ErrCodeNetworkError, "download failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		code, cause := ErrCodeServerError, error(nil)
		if resp.StatusCode == http.StatusNotFound {
			code, cause = ErrCodeNotFound, ErrNotFound
		}
		return nil, NewDataSourceError(s.location, code, fmt.Sprintf("unexpected status %d", resp.StatusCode), cause)
	}
	return resp.Body, nil
}

// ParseCSV reads a header row and maps every following record onto it.
// A leading UTF-8 BOM is dropped; short records leave trailing columns absent.
func ParseCSV(r io.Reader) ([]string, []Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(Row, len(header))
		for i, column := range header {
			if i >= len(record) {
				break
			}
			row[column] = record[i]
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

func isRemoteLocation(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
