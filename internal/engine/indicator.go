package engine

import (
	"fmt"
	"smacross/types"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// ComputeIndicators computes the short and long simple moving averages of the
// closes. Entries inside a window's warm-up are left undefined.
func ComputeIndicators(prices types.PriceSeries, shortWindow, longWindow int) (types.IndicatorSeries, error) {
	if shortWindow < 1 || longWindow < 1 {
		return types.IndicatorSeries{}, fmt.Errorf("windows %d/%d must be positive: %w", shortWindow, longWindow, types.ErrInvalidPrecondition)
	}
	series, err := closeSeries(prices.Dates(), prices.Closes())
	if err != nil {
		return types.IndicatorSeries{}, err
	}
	return types.IndicatorSeries{
		Dates:       prices.Dates(),
		ShortWindow: shortWindow,
		LongWindow:  longWindow,
		SMAShort:    simpleMovingAverage(series, shortWindow),
		SMALong:     simpleMovingAverage(series, longWindow),
	}, nil
}

// closeSeries loads the closes into a techan series. Each candle spans up to
// the next bar's date so that intraday bars are accepted too.
func closeSeries(dates []time.Time, closes []float64) (*techan.TimeSeries, error) {
	series := techan.NewTimeSeries()
	for i, c := range closes {
		var span time.Duration
		if i+1 < len(dates) {
			span = dates[i+1].Sub(dates[i])
		}
		candle := techan.NewCandle(techan.NewTimePeriod(dates[i], span))
		candle.ClosePrice = big.NewDecimal(c)
		if !series.AddCandle(candle) {
			return nil, fmt.Errorf("bar %s out of order: %w", dates[i].Format(time.DateOnly), types.ErrInvalidPrecondition)
		}
	}
	return series, nil
}

// techan reports zero inside the warm-up, so indices before window-1 are
// never asked for.
func simpleMovingAverage(series *techan.TimeSeries, window int) []types.NullFloat {
	out := make([]types.NullFloat, len(series.Candles))
	sma := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(series), window)
	for i := window - 1; i < len(out); i++ {
		out[i] = types.Defined(sma.Calculate(i).Float())
	}
	return out
}
