package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/home-edge/internal/datasource"
)

func TestResolveOddSkipsEmptyColumn(t *testing.T) {
	row := datasource.Row{"A": "", "B": "2.5", "C": "1.9"}

	column, odd, ok := ResolveOdd(row, []string{"A", "B", "C"})

	assert.True(t, ok)
	assert.Equal(t, "B", column)
	assert.True(t, odd.Equal(dec("2.5")))
}

func TestResolveOdd(t *testing.T) {
	tests := []struct {
		name       string
		row        datasource.Row
		priority   []string
		wantColumn string
		wantOdd    string
		wantOK     bool
	}{
		{"first column wins", datasource.Row{"B365CH": "1.44", "B365H": "1.50"}, []string{"B365CH", "B365H"}, "B365CH", "1.44", true},
		{"absent column skipped", datasource.Row{"PSH": "1.62"}, []string{"B365CH", "PSH"}, "PSH", "1.62", true},
		{"whitespace trimmed", datasource.Row{"PSH": " 1.62 "}, []string{"PSH"}, "PSH", "1.62", true},
		{"non numeric skipped", datasource.Row{"A": "n/a", "B": "1.8"}, []string{"A", "B"}, "B", "1.8", true},
		{"nan skipped", datasource.Row{"A": "NaN", "B": "1.8"}, []string{"A", "B"}, "B", "1.8", true},
		{"inf skipped", datasource.Row{"A": "inf", "B": "1.8"}, []string{"A", "B"}, "B", "1.8", true},
		{"zero skipped", datasource.Row{"A": "0", "B": "1.8"}, []string{"A", "B"}, "B", "1.8", true},
		{"negative skipped", datasource.Row{"A": "-2", "B": "1.8"}, []string{"A", "B"}, "B", "1.8", true},
		{"column outside priority ignored", datasource.Row{"MaxH": "1.7"}, []string{"B365H"}, "", "", false},
		{"nothing usable", datasource.Row{"A": "", "B": "x"}, []string{"A", "B"}, "", "", false},
		{"empty priority", datasource.Row{"A": "1.5"}, nil, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, odd, ok := ResolveOdd(tt.row, tt.priority)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantColumn, column)
			if tt.wantOK {
				assert.True(t, odd.Equal(dec(tt.wantOdd)), "got %s", odd)
			}
		})
	}
}
