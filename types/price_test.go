package types

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func TestNewPriceSeries(t *testing.T) {
	tests := []struct {
		name    string
		points  []PricePoint
		wantErr bool
	}{
		{"empty", nil, true},
		{"valid", []PricePoint{{day0, 10}, {day0.AddDate(0, 0, 1), 11}}, false},
		{"zero close", []PricePoint{{day0, 10}, {day0.AddDate(0, 0, 1), 0}}, true},
		{"negative close", []PricePoint{{day0, -1}}, true},
		{"nan close", []PricePoint{{day0, math.NaN()}}, true},
		{"inf close", []PricePoint{{day0, math.Inf(1)}}, true},
		{"duplicate date", []PricePoint{{day0, 10}, {day0, 11}}, true},
		{"decreasing date", []PricePoint{{day0, 10}, {day0.AddDate(0, 0, -1), 11}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPriceSeries(tt.points)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPrecondition) {
					t.Errorf("NewPriceSeries() error = %v, want ErrInvalidPrecondition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPriceSeries() unexpected error = %v", err)
			}
			if got.Len() != len(tt.points) {
				t.Errorf("NewPriceSeries() len = %d, want %d", got.Len(), len(tt.points))
			}
		})
	}
}

func TestPriceSeries_IsImmutable(t *testing.T) {
	points := []PricePoint{{day0, 10}, {day0.AddDate(0, 0, 1), 11}}
	s, err := NewPriceSeries(points)
	if err != nil {
		t.Fatal(err)
	}
	points[0].Close = 99
	closes := s.Closes()
	closes[1] = 42
	dates := s.Dates()
	dates[0] = time.Time{}

	if s.At(0).Close != 10 || s.At(1).Close != 11 {
		t.Errorf("series mutated through caller slices: %v %v", s.At(0), s.At(1))
	}
	if !s.Start().Equal(day0) || !s.End().Equal(day0.AddDate(0, 0, 1)) {
		t.Errorf("Start/End = %v/%v", s.Start(), s.End())
	}
}

func TestPriceSeriesFromCandles(t *testing.T) {
	candles := []Candle{
		{Timestamp: day0, Close: decimal.RequireFromString("101.25")},
		{Timestamp: day0.AddDate(0, 0, 1), Close: decimal.RequireFromString("99.5")},
	}
	s, err := PriceSeriesFromCandles(candles)
	if err != nil {
		t.Fatal(err)
	}
	if s.At(0).Close != 101.25 || s.At(1).Close != 99.5 {
		t.Errorf("closes = %v", s.Closes())
	}

	candles[1].Close = decimal.Zero
	if _, err := PriceSeriesFromCandles(candles); !errors.Is(err, ErrInvalidPrecondition) {
		t.Errorf("zero close error = %v", err)
	}
}

func TestNullFloat(t *testing.T) {
	if v, ok := (NullFloat{}).Get(); ok || v != 0 {
		t.Errorf("zero NullFloat = %v, %v", v, ok)
	}
	if v, ok := Defined(0).Get(); !ok || v != 0 {
		t.Errorf("Defined(0) = %v, %v", v, ok)
	}
	if s := (NullFloat{}).String(); s != "" {
		t.Errorf("undefined String() = %q", s)
	}
	if s := Defined(101.5).String(); s != "101.5" {
		t.Errorf("String() = %q", s)
	}
}
