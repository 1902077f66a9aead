package engine

import (
	"math"
	"smacross/types"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureConfig() *StrategyConfig {
	return NewStrategyConfig(2, 3, TradingDaysPerYear, decimal.NewFromInt(10_000))
}

func TestBacktest_Fixture(t *testing.T) {
	res, err := Backtest("TEST", fixturePrices(t), fixtureConfig())
	require.NoError(t, err)

	assert.InDelta(t, 7.301, res.Metrics.TotalReturnPct, 5e-4)
	assert.InDelta(t, 4.043, res.Metrics.Sharpe, 5e-4)
	assert.InDelta(t, -6.364, res.Metrics.MaxDrawdownPct, 5e-4)
	assert.InDelta(t, 21.0, res.BuyHoldReturnPct(), 1e-9)

	n := len(fixtureCloses)
	assert.Len(t, res.Indicators.Dates, n)
	assert.Len(t, res.Signals.Dates, n)
	assert.Len(t, res.Returns.Dates, n)
}

func TestBacktest_IsDeterministic(t *testing.T) {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/15) + float64(i)/10
	}
	prices := mockPrices(t, closes...)
	cfg := NewStrategyConfig(5, 20, TradingDaysPerYear, decimal.NewFromInt(1000))

	first, err := Backtest("SIN", prices, cfg)
	require.NoError(t, err)
	second, err := Backtest("SIN", prices, cfg)
	require.NoError(t, err)

	assert.Equal(t, math.Float64bits(first.Metrics.TotalReturnPct), math.Float64bits(second.Metrics.TotalReturnPct))
	assert.Equal(t, math.Float64bits(first.Metrics.Sharpe), math.Float64bits(second.Metrics.Sharpe))
	assert.Equal(t, math.Float64bits(first.Metrics.MaxDrawdownPct), math.Float64bits(second.Metrics.MaxDrawdownPct))
	assert.Equal(t, first.Trades, second.Trades)
}

func TestBacktest_NoTrendMeansNoExposure(t *testing.T) {
	// A falling market never puts the short average above the long one.
	prices := mockPrices(t, 100, 99, 98, 97, 96, 95, 94, 93, 92, 91)
	res, err := Backtest("DOWN", prices, fixtureConfig())
	require.NoError(t, err)

	for _, s := range res.Signals.Signal {
		require.Zero(t, s)
	}
	assert.Equal(t, types.Metrics{}, res.Metrics)
	assert.Empty(t, res.Trades)
	assert.Less(t, res.BuyHoldReturnPct(), 0.0)
}

func TestBacktest_InvalidConfig(t *testing.T) {
	prices := fixturePrices(t)
	tests := []struct {
		name string
		cfg  *StrategyConfig
	}{
		{"zero short window", NewStrategyConfig(0, 3, TradingDaysPerYear, decimal.NewFromInt(1))},
		{"zero long window", NewStrategyConfig(2, 0, TradingDaysPerYear, decimal.NewFromInt(1))},
		{"no annualization", NewStrategyConfig(2, 3, 0, decimal.NewFromInt(1))},
		{"no capital", NewStrategyConfig(2, 3, TradingDaysPerYear, decimal.Zero)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Backtest("TEST", prices, tt.cfg)
			assert.ErrorIs(t, err, types.ErrInvalidPrecondition)
		})
	}

	_, err := Backtest("TEST", types.PriceSeries{}, fixtureConfig())
	assert.ErrorIs(t, err, types.ErrInvalidPrecondition)
}

func TestBacktest_TradeLedger(t *testing.T) {
	res, err := Backtest("TEST", fixturePrices(t), fixtureConfig())
	require.NoError(t, err)
	require.Len(t, res.Trades, 2)

	first := res.Trades[0]
	assert.Equal(t, fixtureStart.AddDate(0, 0, 2), first.EntryDate)
	assert.Equal(t, fixtureStart.AddDate(0, 0, 6), first.ExitDate)
	assert.Equal(t, 101.0, first.EntryPrice)
	assert.Equal(t, 103.0, first.ExitPrice)
	assert.InDelta(t, 10_000.0/101, first.Units, 1e-9)
	assert.InDelta(t, (103.0/101-1)*100, first.ReturnPct, 1e-9)
	assert.False(t, first.Open)

	last := res.Trades[1]
	assert.True(t, last.Open)
	assert.True(t, last.ExitDate.IsZero())
	assert.Equal(t, 115.0, last.EntryPrice)
	assert.Equal(t, 121.0, last.ExitPrice)

	assert.Equal(t, 1, res.TradeStats.Closed)
	assert.Equal(t, 1, res.TradeStats.Profitable)
	assert.InDelta(t, 10_000.0/101*2, res.TradeStats.TotalProfit, 1e-6)

	// Closed trades compound to the strategy curve over the same bars.
	assert.InDelta(t, first.ExitPrice/first.EntryPrice, res.Returns.STRCurve[6]/res.Returns.STRCurve[2], 1e-12)
	assert.InDelta(t, 1+last.ReturnPct/100, res.Returns.STRCurve[9]/res.Returns.STRCurve[7], 1e-12)
}

func TestResult_EquityChart(t *testing.T) {
	res, err := Backtest("TEST", fixturePrices(t), fixtureConfig())
	require.NoError(t, err)

	chart := res.EquityChart(types.Day)
	assert.Equal(t, "TEST", chart.Ticker)
	assert.Equal(t, types.Day, chart.Interval)
	assert.Equal(t, fixtureStart, chart.Start)
	assert.InDelta(t, 10_000.0, chart.Strategy[0], 1e-9)
	assert.InDelta(t, 12_100.0, chart.BuyHold[9], 1e-6)
	assert.InDelta(t, 10_730.090400344, chart.Strategy[9], 1e-6)
}
