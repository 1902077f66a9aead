package types

import (
	"strconv"
	"time"
)

// NullFloat is a float that may be undefined, e.g. a moving average inside
// its warm-up window. A valid zero and an undefined value are different.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

func Defined(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

func (n NullFloat) Get() (float64, bool) {
	return n.Float64, n.Valid
}

// String renders undefined values as an empty string.
func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

// IndicatorSeries holds the two moving averages, index aligned with the
// price series they were computed from.
type IndicatorSeries struct {
	Dates       []time.Time
	ShortWindow int
	LongWindow  int
	SMAShort    []NullFloat
	SMALong     []NullFloat
}

func (s IndicatorSeries) Len() int {
	return len(s.Dates)
}

// SignalSeries holds the trend state (0/1) and its transitions (-1/0/1).
type SignalSeries struct {
	Dates    []time.Time
	Signal   []int
	Position []int
}

func (s SignalSeries) Len() int {
	return len(s.Dates)
}

// ReturnSeries is the outcome of applying a lagged signal to close-to-close
// returns. BHCurve and STRCurve are growth of one unit of capital.
type ReturnSeries struct {
	Dates     []time.Time
	CloseRet  []float64
	SignalLag []int
	StratRet  []float64
	BHCurve   []float64
	STRCurve  []float64
}

func (s ReturnSeries) Len() int {
	return len(s.Dates)
}

type Metrics struct {
	TotalReturnPct float64 `json:"total_return_pct"`
	Sharpe         float64 `json:"sharpe"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
}
