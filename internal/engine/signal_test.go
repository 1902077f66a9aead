package engine

import (
	"smacross/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSignals_Fixture(t *testing.T) {
	ind, err := ComputeIndicators(fixturePrices(t), 2, 3)
	require.NoError(t, err)

	sig := GenerateSignals(ind)
	assert.Equal(t, []int{0, 0, 1, 1, 1, 1, 0, 1, 1, 1}, sig.Signal)
	assert.Equal(t, []int{0, 0, 1, 0, 0, 0, -1, 1, 0, 0}, sig.Position)
	assert.Equal(t, ind.Dates, sig.Dates)
}

func TestGenerateSignals_Rules(t *testing.T) {
	dates := make([]time.Time, 5)
	for i := range dates {
		dates[i] = fixtureStart.AddDate(0, 0, i)
	}
	tests := []struct {
		name         string
		short        []types.NullFloat
		long         []types.NullFloat
		wantSignal   []int
		wantPosition []int
	}{
		{
			name:         "undefined averages are neutral",
			short:        []types.NullFloat{undefined(), types.Defined(5), undefined(), types.Defined(5), types.Defined(5)},
			long:         []types.NullFloat{types.Defined(1), undefined(), undefined(), types.Defined(1), types.Defined(1)},
			wantSignal:   []int{0, 0, 0, 1, 1},
			wantPosition: []int{0, 0, 0, 1, 0},
		},
		{
			name:         "ties resolve to no trend",
			short:        []types.NullFloat{types.Defined(2), types.Defined(3), types.Defined(3), types.Defined(0), types.Defined(0)},
			long:         []types.NullFloat{types.Defined(1), types.Defined(3), types.Defined(2), types.Defined(0), types.Defined(-1)},
			wantSignal:   []int{1, 0, 1, 0, 1},
			wantPosition: []int{0, -1, 1, -1, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := GenerateSignals(types.IndicatorSeries{Dates: dates, SMAShort: tt.short, SMALong: tt.long})
			assert.Equal(t, tt.wantSignal, sig.Signal)
			assert.Equal(t, tt.wantPosition, sig.Position)
		})
	}
}

func TestGenerateSignals_PositionIsSignalDifference(t *testing.T) {
	prices := mockPrices(t, 10, 11, 12, 11, 10, 9, 10, 12, 13, 12, 11, 10, 11, 13, 15, 14)
	ind, err := ComputeIndicators(prices, 2, 4)
	require.NoError(t, err)

	sig := GenerateSignals(ind)
	require.Equal(t, 0, sig.Position[0])
	for i := 1; i < len(sig.Signal); i++ {
		assert.Equal(t, sig.Signal[i]-sig.Signal[i-1], sig.Position[i], "index %d", i)
		assert.Contains(t, []int{-1, 0, 1}, sig.Position[i])
		assert.Contains(t, []int{0, 1}, sig.Signal[i])
	}
}

func TestGenerateSignals_PanicsOnMisalignedAverages(t *testing.T) {
	ind, err := ComputeIndicators(fixturePrices(t), 2, 3)
	require.NoError(t, err)
	ind.SMAShort = ind.SMAShort[:3]

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, types.ErrInvalidPrecondition)
	}()
	GenerateSignals(ind)
	t.Fatal("expected a panic")
}
