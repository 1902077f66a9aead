package engine

import (
	"smacross/types"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixtureCloses = []float64{100, 102, 101, 105, 110, 108, 103, 115, 120, 121}

var fixtureStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func mockPrices(t *testing.T, closes ...float64) types.PriceSeries {
	t.Helper()
	points := make([]types.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = types.PricePoint{Date: fixtureStart.AddDate(0, 0, i), Close: c}
	}
	prices, err := types.NewPriceSeries(points)
	require.NoError(t, err)
	return prices
}

func fixturePrices(t *testing.T) types.PriceSeries {
	return mockPrices(t, fixtureCloses...)
}

func undefined() types.NullFloat {
	return types.NullFloat{}
}
