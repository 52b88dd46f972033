package backtest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/datasource"
)

// Layout selects the ledger table columns
type Layout int

const (
	// LayoutFile shows separate team columns and the odds column used
	LayoutFile Layout = iota
	// LayoutRelational shows the match label and both closing odds
	LayoutRelational
)

const (
	homeTeamWidth = 15
	awayTeamWidth = 18
	labelWidth    = 40
	clockWidth    = 5
)

// ConsoleReporter renders runs for the terminal
type ConsoleReporter struct {
	out    io.Writer
	layout Layout
	config BacktestConfig
}

// NewConsoleReporter creates a reporter writing to out
func NewConsoleReporter(out io.Writer, layout Layout, cfg BacktestConfig) *ConsoleReporter {
	return &ConsoleReporter{out: out, layout: layout, config: cfg}
}

// Report prints the run header, the ledger table and the summary block.
// The summary is printed even when the ledger is empty.
func (r *ConsoleReporter) Report(header string, ledger *Ledger, summary Summary) error {
	if header != "" {
		fmt.Fprintln(r.out, header)
	}

	if err := r.printLedger(ledger); err != nil {
		return err
	}

	r.printSummary(summary)
	return nil
}

func (r *ConsoleReporter) printLedger(ledger *Ledger) error {
	if ledger == nil {
		return nil
	}

	table := tablewriter.NewWriter(r.out)
	if r.layout == LayoutRelational {
		table.Header("#", "Date", "Match", "OddHome", "OddAway", "Score", "Res", "Profit", "Cum")
	} else {
		table.Header("#", "Date", "Time", "Home", "Away", "Odd(H)", "Score", "Res", "Profit", "Cum", "Col")
	}

	for i, entry := range ledger.Entries {
		if !r.config.PrintsRow(i) {
			break
		}
		if err := table.Append(r.cells(entry)...); err != nil {
			return fmt.Errorf("failed to append ledger row %d: %w", entry.Index, err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render ledger: %w", err)
	}
	return nil
}

func (r *ConsoleReporter) cells(entry Entry) []any {
	rec := entry.Record
	out := entry.Outcome

	if r.layout == LayoutRelational {
		awayOdd := "-"
		if rec.AwayOdd.Valid {
			awayOdd = rec.AwayOdd.Decimal.StringFixed(2)
		}
		return []any{
			strconv.Itoa(entry.Index),
			rec.Date,
			truncate(rec.DisplayName(), labelWidth),
			rec.HomeOdd.StringFixed(2),
			awayOdd,
			rec.Score(),
			string(out.Result),
			out.Profit.StringFixed(2),
			out.RunningTotal.StringFixed(2),
		}
	}

	return []any{
		strconv.Itoa(entry.Index),
		rec.Date,
		truncate(rec.Time, clockWidth),
		truncate(rec.HomeTeam, homeTeamWidth),
		truncate(rec.AwayTeam, awayTeamWidth),
		rec.HomeOdd.StringFixed(2),
		rec.Score(),
		string(out.Result),
		out.Profit.StringFixed(2),
		out.RunningTotal.StringFixed(2),
		"(" + rec.OddSource + ")",
	}
}

func (r *ConsoleReporter) printSummary(s Summary) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Summary:")
	fmt.Fprintf(r.out, "Matches: %d | W: %d  D: %d  L: %d\n", s.TotalMatches, s.Wins, s.Draws, s.Losses)
	fmt.Fprintf(r.out, "Net profit: %s | ROI: %s%% | Win rate: %s%%\n",
		s.NetProfit.StringFixed(2), s.ROI.StringFixed(2), s.WinRate.StringFixed(2))
}

// ReportExtremes prints the oldest and newest match of a table
func (r *ConsoleReporter) ReportExtremes(oldest, newest *datasource.TableRow) {
	printExtreme(r.out, "Oldest", oldest)
	printExtreme(r.out, "Newest", newest)
}

func printExtreme(out io.Writer, label string, row *datasource.TableRow) {
	if row == nil {
		fmt.Fprintf(out, "%s: not found\n", label)
		return
	}
	score := "N/D"
	if row.HasScore() {
		score = row.HomeGoals + "-" + row.AwayGoals
	}
	fmt.Fprintf(out, "%s: %s %s | %s | Score: %s | Odds (1-X-2): %s, %s, %s | DT raw: %s\n",
		label, row.Date, row.Time, row.Label, score, row.HomeOdd, row.DrawOdd, row.AwayOdd, row.RawDateTime)
}

// FileRunHeader describes a Football-Data run
func FileRunHeader(files, homeTeams, excluded []string, stake decimal.Decimal) string {
	return fmt.Sprintf("Files: %s\nHome teams: [%s] | Excluded: [%s] | Stake=%s",
		strings.Join(files, ", "),
		strings.Join(homeTeams, ", "),
		strings.Join(excluded, ", "),
		stake.StringFixed(2))
}

// RelationalRunHeader describes a relational run
func RelationalRunHeader(database, table string, homeOddMax, awayOddMin, stake decimal.Decimal) string {
	return fmt.Sprintf("DB: %s | Table: %s | Filter: home <= %s & away > %s | Stake=%s",
		database, table, homeOddMax.String(), awayOddMin.String(), stake.StringFixed(2))
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
