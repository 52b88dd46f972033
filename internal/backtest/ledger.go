package backtest

import (
	"github.com/shopspring/decimal"
	"github.com/yourusername/home-edge/internal/models"
	"github.com/yourusername/home-edge/internal/strategy"
)

// Entry is one settled bet, numbered from 1 in sequence order
type Entry struct {
	Index   int
	Record  models.MatchRecord
	Outcome models.BetOutcome
}

// Ledger is the bet-by-bet account of a run. It is read-only once folded.
type Ledger struct {
	Stake     decimal.Decimal
	Entries   []Entry
	Wins      int
	Draws     int
	Losses    int
	NetProfit decimal.Decimal
}

// Fold settles every record in order with a fixed stake
func Fold(records []models.MatchRecord, stake decimal.Decimal) *Ledger {
	ledger := &Ledger{
		Stake:     stake,
		Entries:   make([]Entry, 0, len(records)),
		NetProfit: decimal.Zero,
	}

	for i, record := range records {
		result, profit := strategy.SettleHomeBet(record, stake)
		ledger.NetProfit = ledger.NetProfit.Add(profit)

		switch result {
		case models.ResultWin:
			ledger.Wins++
		case models.ResultDraw:
			ledger.Draws++
		default:
			ledger.Losses++
		}

		ledger.Entries = append(ledger.Entries, Entry{
			Index:  i + 1,
			Record: record,
			Outcome: models.BetOutcome{
				Result:       result,
				Profit:       profit,
				RunningTotal: ledger.NetProfit,
			},
		})
	}

	return ledger
}

// Len returns the number of bets
func (l *Ledger) Len() int {
	return len(l.Entries)
}
