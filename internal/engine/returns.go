package engine

import (
	"fmt"
	"smacross/types"
)

// ComputeReturns applies yesterday's signal to today's close-to-close return
// and accumulates the strategy and buy-and-hold equity curves.
func ComputeReturns(prices types.PriceSeries, signals types.SignalSeries) (types.ReturnSeries, error) {
	n := prices.Len()
	if signals.Len() != n || len(signals.Signal) != n {
		return types.ReturnSeries{}, fmt.Errorf("%d signals for %d prices: %w", len(signals.Signal), n, types.ErrInvalidPrecondition)
	}

	out := types.ReturnSeries{
		Dates:     prices.Dates(),
		CloseRet:  make([]float64, n),
		SignalLag: make([]int, n),
		StratRet:  make([]float64, n),
		BHCurve:   make([]float64, n),
		STRCurve:  make([]float64, n),
	}

	bh, str := 1.0, 1.0
	for i := 0; i < n; i++ {
		cur := prices.At(i)
		if !cur.Date.Equal(signals.Dates[i]) {
			return types.ReturnSeries{}, fmt.Errorf("signal date %s at index %d, price date %s: %w",
				signals.Dates[i].Format("2006-01-02"), i, cur.Date.Format("2006-01-02"), types.ErrInvalidPrecondition)
		}
		if cur.Close <= 0 {
			return types.ReturnSeries{}, fmt.Errorf("close %v at index %d: %w", cur.Close, i, types.ErrInvalidPrecondition)
		}
		if i > 0 {
			prev := prices.At(i - 1).Close
			out.CloseRet[i] = (cur.Close - prev) / prev
			// Weight today's return by the signal known at yesterday's close.
			out.SignalLag[i] = signals.Signal[i-1]
		}
		out.StratRet[i] = out.CloseRet[i] * float64(out.SignalLag[i])

		bh *= 1 + out.CloseRet[i]
		str *= 1 + out.StratRet[i]
		out.BHCurve[i] = bh
		out.STRCurve[i] = str
	}
	return out, nil
}
