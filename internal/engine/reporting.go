package engine

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// ReportMeta is the run information printed next to the metrics.
type ReportMeta struct {
	Ticker    string
	Start     time.Time
	End       time.Time
	ChartPath string
}

func writeSummaryFile(path string, meta ReportMeta, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer f.Close()

	if err := WriteSummary(f, meta, r); err != nil {
		return err
	}
	return f.Close()
}

// WriteSummary renders a plain text report of one backtest.
func WriteSummary(w io.Writer, meta ReportMeta, r *Result) error {
	capital := r.Config.initialCapital
	n := len(r.Returns.STRCurve)
	finalStrategy, finalBuyHold := capital, capital
	if n > 0 {
		finalStrategy = capital.Mul(decimal.NewFromFloat(r.Returns.STRCurve[n-1]))
		finalBuyHold = capital.Mul(decimal.NewFromFloat(r.Returns.BHCurve[n-1]))
	}
	chart := meta.ChartPath
	if chart == "" {
		chart = "-"
	}

	ew := &errWriter{w: w}
	ew.printf("===== SMA Crossover Backtest =====\n")
	ew.printf("Ticker:                %s\n", meta.Ticker)
	ew.printf("Period:                %s -> %s\n", meta.Start.Format(time.DateOnly), meta.End.Format(time.DateOnly))
	ew.printf("Bars:                  %d\n", r.Prices.Len())
	ew.printf("Windows (short/long):  %d/%d\n", r.Config.shortWindow, r.Config.longWindow)

	ew.printf("\n-- Performance --\n")
	ew.printf("Total Return:          %.2f%%\n", r.Metrics.TotalReturnPct)
	ew.printf("Buy & Hold Return:     %.2f%%\n", r.BuyHoldReturnPct())
	ew.printf("Sharpe (ann.):         %.2f\n", r.Metrics.Sharpe)
	ew.printf("Max Drawdown:          %.2f%%\n", r.Metrics.MaxDrawdownPct)

	ew.printf("\n-- Equity --\n")
	ew.printf("Initial Capital:       %s\n", capital.StringFixed(2))
	ew.printf("Final Strategy:        %s\n", finalStrategy.StringFixed(2))
	ew.printf("Final Buy & Hold:      %s\n", finalBuyHold.StringFixed(2))

	ew.printf("\n-- Trades --\n")
	ew.printf("Entries:               %d\n", len(r.Trades))
	ew.printf("Closed:                %d\n", r.TradeStats.Closed)
	ew.printf("Profitable:            %d\n", r.TradeStats.Profitable)

	ew.printf("\nEquity chart:          %s\n", chart)
	ew.printf("==================================\n")
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
