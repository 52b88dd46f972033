package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const footballDataCSV = "\ufeffDiv,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,B365H,PSH\n" +
	"SP1,18/08/24,21:30,Real Madrid,Valladolid,3,0,1.20,1.22\n" +
	"SP1,25/08/24,19:00,Las Palmas,Real Madrid,1,1,7.00,7.10\n" +
	"SP1,29/08/24,21:30,Real Madrid,Betis\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SP1_2425.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCSVStripsBOM(t *testing.T) {
	columns, rows, err := ParseCSV(strings.NewReader(footballDataCSV))
	require.NoError(t, err)

	assert.Equal(t, "Div", columns[0])
	require.Len(t, rows, 3)
	assert.Equal(t, "SP1", rows[0].Get("Div"))
	assert.Equal(t, "Real Madrid", rows[0].Get("HomeTeam"))
	assert.Equal(t, "1.20", rows[0].Get("B365H"))
}

func TestParseCSVShortRow(t *testing.T) {
	_, rows, err := ParseCSV(strings.NewReader(footballDataCSV))
	require.NoError(t, err)

	short := rows[2]
	assert.Equal(t, "Betis", short.Get("AwayTeam"))
	assert.False(t, short.Has("FTHG"))
	assert.False(t, short.Has("B365H"))
	assert.Equal(t, "", short.Get("FTHG"))
}

func TestParseCSVEmptyAndHeaderOnly(t *testing.T) {
	columns, rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, columns)
	assert.Empty(t, rows)

	columns, rows, err = ParseCSV(strings.NewReader("Date,HomeTeam\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "HomeTeam"}, columns)
	assert.Empty(t, rows)
}

func TestCSVSourceLoadFile(t *testing.T) {
	path := writeCSV(t, footballDataCSV)
	source := NewCSVSource(path, []string{"PSH", "B365H"}, nil)

	assert.Equal(t, path, source.Name())
	assert.Equal(t, "csv", source.Type())
	assert.False(t, source.IsRemote())

	rowSet, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, rowSet.Source)
	assert.Len(t, rowSet.Rows, 3)
	assert.False(t, rowSet.Ordered)
	assert.Equal(t, []string{"PSH", "B365H"}, rowSet.Schema.HomeOddFields)
	assert.Equal(t, []string{ColumnFTHG, ColumnHG}, rowSet.Schema.HomeGoalFields)
}

func TestCSVSourceMissingFile(t *testing.T) {
	source := NewCSVSource(filepath.Join(t.TempDir(), "D1_2223.csv"), DefaultOddsPriority, nil)

	_, err := source.Load(context.Background())
	require.Error(t, err)

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeNotFound, dsErr.Code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.ErrorIs(t, err, ErrNotFound)
}

func testHTTPClient() *RateLimitedHTTPClient {
	return NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           5 * time.Second,
		MaxRetries:        1,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      5 * time.Millisecond,
		CircuitBreakerMax: 5,
	}, nil)
}

func TestCSVSourceLoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mmz4281/2425/SP1.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(footballDataCSV))
	}))
	defer server.Close()

	client := testHTTPClient()
	source := NewCSVSource(server.URL+"/mmz4281/2425/SP1.csv", DefaultOddsPriority, client)
	assert.True(t, source.IsRemote())

	rowSet, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rowSet.Rows, 3)
	assert.Equal(t, "Valladolid", rowSet.Rows[0].Get("AwayTeam"))

	missing := NewCSVSource(server.URL+"/mmz4281/2425/XX.csv", DefaultOddsPriority, client)
	_, err = missing.Load(context.Background())
	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeNotFound, dsErr.Code)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCSVSourceRemoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	source := NewCSVSource(server.URL+"/E0.csv", DefaultOddsPriority, testHTTPClient())
	_, err := source.Load(context.Background())

	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeServerError, dsErr.Code)
}

func TestCSVSourceRemoteWithoutClient(t *testing.T) {
	source := NewCSVSource("https://www.football-data.co.uk/mmz4281/2425/SP1.csv", DefaultOddsPriority, nil)

	_, err := source.Load(context.Background())
	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeNetworkError, dsErr.Code)
}
