package engine

import (
	"fmt"
	"smacross/types"
	"time"
)

// GenerateSignals turns the two averages into a trend state and its
// transitions. The trend is on only while the short average is strictly above
// the long one; undefined averages count as no trend. It panics when the
// averages are not aligned with the dates.
func GenerateSignals(ind types.IndicatorSeries) types.SignalSeries {
	n := ind.Len()
	if len(ind.SMAShort) != n || len(ind.SMALong) != n {
		panic(fmt.Errorf("averages of length %d/%d for %d dates: %w",
			len(ind.SMAShort), len(ind.SMALong), n, types.ErrInvalidPrecondition))
	}
	dates := make([]time.Time, n)
	copy(dates, ind.Dates)
	signal := make([]int, n)
	position := make([]int, n)

	for i := 0; i < n; i++ {
		short, okShort := ind.SMAShort[i].Get()
		long, okLong := ind.SMALong[i].Get()
		if okShort && okLong && short > long {
			signal[i] = 1
		}
		if i > 0 {
			position[i] = signal[i] - signal[i-1]
		}
	}

	return types.SignalSeries{
		Dates:    dates,
		Signal:   signal,
		Position: position,
	}
}
