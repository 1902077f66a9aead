package engine

import (
	"fmt"
	"math"
	"smacross/types"

	"gonum.org/v1/gonum/stat"
)

// TradingDaysPerYear annualizes daily bar returns.
const TradingDaysPerYear = 252.0

// Volatility below this is treated as zero.
const volatilityEpsilon = 1e-12

// EvaluateMetrics reduces a return series to total return, annualized Sharpe
// ratio and maximum drawdown of the strategy curve.
func EvaluateMetrics(returns types.ReturnSeries, periodsPerYear float64) (types.Metrics, error) {
	n := len(returns.STRCurve)
	if n == 0 || len(returns.StratRet) != n {
		return types.Metrics{}, fmt.Errorf("return series of %d/%d entries: %w", len(returns.StratRet), n, types.ErrInvalidPrecondition)
	}
	if periodsPerYear <= 0 {
		return types.Metrics{}, fmt.Errorf("periods per year %v: %w", periodsPerYear, types.ErrInvalidPrecondition)
	}

	return types.Metrics{
		TotalReturnPct: (returns.STRCurve[n-1] - 1) * 100,
		Sharpe:         sharpeRatio(returns.StratRet, periodsPerYear),
		MaxDrawdownPct: maxDrawdown(returns.STRCurve) * 100,
	}, nil
}

func sharpeRatio(rets []float64, periodsPerYear float64) float64 {
	// A sample standard deviation needs two observations.
	if len(rets) < 2 {
		return 0
	}
	mean, vol := stat.MeanStdDev(rets, nil)
	if vol < volatilityEpsilon {
		return 0
	}
	return mean / vol * math.Sqrt(periodsPerYear)
}

// maxDrawdown returns the most negative relative decline from a running peak,
// as a fraction in [-1, 0].
func maxDrawdown(curve []float64) float64 {
	peak := curve[0]
	worst := 0.0
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		if dd := v/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}
