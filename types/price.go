package types

import (
	"fmt"
	"math"
	"time"
)

type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered, validated sequence of daily closes. It is
// immutable once built; accessors hand out copies.
type PriceSeries struct {
	points []PricePoint
}

// NewPriceSeries validates points and copies them into a PriceSeries.
// Dates must be strictly increasing and every close finite and positive.
func NewPriceSeries(points []PricePoint) (PriceSeries, error) {
	if len(points) == 0 {
		return PriceSeries{}, fmt.Errorf("empty price series: %w", ErrInvalidPrecondition)
	}
	out := make([]PricePoint, len(points))
	for i, p := range points {
		if math.IsNaN(p.Close) || math.IsInf(p.Close, 0) || p.Close <= 0 {
			return PriceSeries{}, fmt.Errorf("close %v at %s: %w", p.Close, p.Date.Format(time.DateOnly), ErrInvalidPrecondition)
		}
		if i > 0 && !p.Date.After(points[i-1].Date) {
			return PriceSeries{}, fmt.Errorf("date %s not after %s: %w",
				p.Date.Format(time.DateOnly), points[i-1].Date.Format(time.DateOnly), ErrInvalidPrecondition)
		}
		out[i] = p
	}
	return PriceSeries{points: out}, nil
}

// PriceSeriesFromCandles keeps the close of every candle, in order.
func PriceSeriesFromCandles(candles []Candle) (PriceSeries, error) {
	points := make([]PricePoint, 0, len(candles))
	for _, c := range candles {
		points = append(points, PricePoint{Date: c.Timestamp, Close: c.Close.InexactFloat64()})
	}
	return NewPriceSeries(points)
}

func (s PriceSeries) Len() int {
	return len(s.points)
}

func (s PriceSeries) At(i int) PricePoint {
	return s.points[i]
}

func (s PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.points))
	for i, p := range s.points {
		out[i] = p.Date
	}
	return out
}

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = p.Close
	}
	return out
}

func (s PriceSeries) Start() time.Time {
	if len(s.points) == 0 {
		return time.Time{}
	}
	return s.points[0].Date
}

func (s PriceSeries) End() time.Time {
	if len(s.points) == 0 {
		return time.Time{}
	}
	return s.points[len(s.points)-1].Date
}
