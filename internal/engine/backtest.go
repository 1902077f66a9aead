package engine

import (
	"fmt"
	"smacross/types"
)

// Result bundles the output of every stage of one backtest run.
type Result struct {
	Ticker     string
	Prices     types.PriceSeries
	Indicators types.IndicatorSeries
	Signals    types.SignalSeries
	Returns    types.ReturnSeries
	Metrics    types.Metrics
	Trades     []types.Trade
	TradeStats TradeStats
	Config     *StrategyConfig
}

// Backtest runs the crossover over prices: indicators, signals, returns,
// metrics, in that order. Each stage only reads the output of the previous.
func Backtest(ticker string, prices types.PriceSeries, cfg *StrategyConfig) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if prices.Len() == 0 {
		return nil, fmt.Errorf("%s: empty price series: %w", ticker, types.ErrInvalidPrecondition)
	}

	indicators, err := ComputeIndicators(prices, cfg.shortWindow, cfg.longWindow)
	if err != nil {
		return nil, fmt.Errorf("%s: indicators: %w", ticker, err)
	}
	signals := GenerateSignals(indicators)
	returns, err := ComputeReturns(prices, signals)
	if err != nil {
		return nil, fmt.Errorf("%s: returns: %w", ticker, err)
	}
	metrics, err := EvaluateMetrics(returns, cfg.periodsPerYear)
	if err != nil {
		return nil, fmt.Errorf("%s: metrics: %w", ticker, err)
	}
	trades, stats := buildTradeLedger(ticker, prices, signals, returns, cfg.initialCapital.InexactFloat64())

	return &Result{
		Ticker:     ticker,
		Prices:     prices,
		Indicators: indicators,
		Signals:    signals,
		Returns:    returns,
		Metrics:    metrics,
		Trades:     trades,
		TradeStats: stats,
		Config:     cfg,
	}, nil
}

// BuyHoldReturnPct is the total return of holding the instrument throughout.
func (r *Result) BuyHoldReturnPct() float64 {
	n := len(r.Returns.BHCurve)
	if n == 0 {
		return 0
	}
	return (r.Returns.BHCurve[n-1] - 1) * 100
}

// EquityChart scales both curves by the initial capital.
func (r *Result) EquityChart(interval types.Interval) types.EquityChart {
	capital := r.Config.initialCapital.InexactFloat64()
	chart := types.EquityChart{
		Ticker:   r.Ticker,
		Dates:    r.Returns.Dates,
		Strategy: make([]float64, len(r.Returns.STRCurve)),
		BuyHold:  make([]float64, len(r.Returns.BHCurve)),
		Start:    r.Prices.Start(),
		End:      r.Prices.End(),
		Interval: interval,
	}
	for i := range r.Returns.STRCurve {
		chart.Strategy[i] = capital * r.Returns.STRCurve[i]
		chart.BuyHold[i] = capital * r.Returns.BHCurve[i]
	}
	return chart
}
