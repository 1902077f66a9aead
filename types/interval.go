package types

import (
	"fmt"
	"time"
)

type Interval string

const (
	OneMinute      Interval = "1"
	FiveMinutes    Interval = "5"
	FifteenMinutes Interval = "15"
	ThirtyMinutes  Interval = "30"
	Hour           Interval = "60"
	FourHours      Interval = "240"
	Day            Interval = "D"
	Week           Interval = "W"
	Month          Interval = "M"
)

var IntervalToTime = map[Interval]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    time.Minute * 5,
	FifteenMinutes: time.Minute * 15,
	ThirtyMinutes:  time.Minute * 30,
	Hour:           time.Hour,
	FourHours:      time.Hour * 4,
	Day:            time.Hour * 24,
	Week:           time.Hour * 24 * 7,
}

// Bars per year, assuming 252 US equity sessions of 6.5 hours.
var intervalPeriodsPerYear = map[Interval]float64{
	OneMinute:      252 * 390,
	FiveMinutes:    252 * 78,
	FifteenMinutes: 252 * 26,
	ThirtyMinutes:  252 * 13,
	Hour:           252 * 6.5,
	FourHours:      252 * 6.5 / 4,
	Day:            252,
	Week:           52,
	Month:          12,
}

var ConvertInterval = map[string]Interval{
	"1":   OneMinute,
	"5":   FiveMinutes,
	"15":  FifteenMinutes,
	"30":  ThirtyMinutes,
	"60":  Hour,
	"240": FourHours,
	"D":   Day,
	"W":   Week,
	"M":   Month,
}

func ParseInterval(s string) (Interval, error) {
	iv, ok := ConvertInterval[s]
	if !ok {
		return "", fmt.Errorf("unknown interval %q", s)
	}
	return iv, nil
}

// PeriodsPerYear is the annualization factor for returns sampled at this
// interval. Unknown intervals fall back to daily.
func (i Interval) PeriodsPerYear() float64 {
	if n, ok := intervalPeriodsPerYear[i]; ok {
		return n
	}
	return intervalPeriodsPerYear[Day]
}
