package backtest

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/datasource"
)

// ResolveOdd picks the first odds column of priority that is present in the row and holds
// a positive number. ok is false when no column qualifies.
func ResolveOdd(row datasource.Row, priority []string) (string, decimal.Decimal, bool) {
	for _, column := range priority {
		if !row.Has(column) {
			continue
		}
		raw := strings.TrimSpace(row.Get(column))
		if raw == "" {
			continue
		}
		odd, err := decimal.NewFromString(raw)
		if err != nil || !odd.IsPositive() {
			continue
		}
		return column, odd, true
	}
	return "", decimal.Decimal{}, false
}
