package engine

import (
	"smacross/types"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

type TradeStats struct {
	Closed      int
	Profitable  int
	TotalProfit float64
}

// buildTradeLedger replays the entry and exit events of the signal series as
// orders. A position entered on bar i starts earning on bar i+1, which is the
// lagged weighting used for the strategy returns, so entry and exit both fill
// at the close of the transition bar.
func buildTradeLedger(ticker string, prices types.PriceSeries, signals types.SignalSeries, returns types.ReturnSeries, capital float64) ([]types.Trade, TradeStats) {
	record := techan.NewTradingRecord()
	var trades []types.Trade

	for i, pos := range signals.Position {
		bar := prices.At(i)
		switch pos {
		case 1:
			units := capital * returns.STRCurve[i] / bar.Close
			record.Operate(techan.Order{
				Side:          techan.BUY,
				Security:      ticker,
				Price:         big.NewDecimal(bar.Close),
				Amount:        big.NewDecimal(units),
				ExecutionTime: bar.Date,
			})
			trades = append(trades, types.Trade{
				Ticker:     ticker,
				EntryDate:  bar.Date,
				EntryPrice: bar.Close,
				Units:      units,
				Open:       true,
			})
		case -1:
			if len(trades) == 0 || !trades[len(trades)-1].Open {
				continue
			}
			t := &trades[len(trades)-1]
			record.Operate(techan.Order{
				Side:          techan.SELL,
				Security:      ticker,
				Price:         big.NewDecimal(bar.Close),
				Amount:        big.NewDecimal(t.Units),
				ExecutionTime: bar.Date,
			})
			t.ExitDate = bar.Date
			t.ExitPrice = bar.Close
			t.Open = false
		}
	}

	// Value a trade still open at the end at the last close.
	if len(trades) > 0 && trades[len(trades)-1].Open {
		t := &trades[len(trades)-1]
		t.ExitPrice = prices.At(prices.Len() - 1).Close
	}
	for i := range trades {
		trades[i].ReturnPct = (trades[i].ExitPrice/trades[i].EntryPrice - 1) * 100
	}

	var (
		profitable  techan.ProfitableTradesAnalysis
		totalProfit techan.TotalProfitAnalysis
	)
	return trades, TradeStats{
		Closed:      len(record.Trades),
		Profitable:  int(profitable.Analyze(record)),
		TotalProfit: totalProfit.Analyze(record),
	}
}
