package repository

import (
	"context"
	"fmt"
	"smacross/types"
	"time"
)

var bucketToInterval = map[types.Interval]string{
	types.OneMinute:     "1 minute",
	types.FiveMinutes:   "5 minutes",
	types.ThirtyMinutes: "30 minutes",
	types.Hour:          "1 hour",
	types.FourHours:     "4 hours",
	types.Day:           "1 day",
	types.Week:          "1 week",
}

// PostgresSupports reports whether the database store can bucket candles into iv.
func PostgresSupports(iv types.Interval) bool {
	_, ok := bucketToInterval[iv]
	return ok
}

// GetAggregates buckets the stored candles of an asset into interval bars over [start, end).
func (db *Database) GetAggregates(ctx context.Context, assetID int, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error) {
	bucket, ok := bucketToInterval[interval]
	if !ok {
		return nil, ErrIntervalNotSupported
	}
	args := getAggregatesParams{
		TimeBucket: bucket,
		AssetID:    int32(assetID),
		Starttime:  start,
		Endtime:    end,
	}
	candles, err := db.candles.GetAggregates(ctx, args)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNoCandles
		}
		return nil, err
	}
	out := convertCandles(candles, interval, ticker)
	if len(out) == 0 {
		return nil, ErrNoCandles
	}
	return out, nil
}

// InsertCandles bulk loads candles for an asset with COPY.
func (db *Database) InsertCandles(ctx context.Context, assetID int, candles []types.Candle) (int64, error) {
	rows := make([][]any, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, []any{c.Timestamp, int32(assetID), c.Open, c.High, c.Low, c.Close, c.Volume})
	}
	n, err := db.candles.CopyCandles(ctx, rows)
	if err != nil {
		return n, fmt.Errorf("copy candles: %w", err)
	}
	return n, nil
}

func convertCandles(candleDAOs []aggregateRow, interval types.Interval, ticker string) []types.Candle {
	var candles []types.Candle
	for _, dao := range candleDAOs {
		candles = append(candles, types.Candle{
			AssetID:   int(dao.AssetID),
			Ticker:    ticker,
			Open:      dao.Open,
			Close:     dao.Close,
			High:      dao.High,
			Low:       dao.Low,
			Volume:    dao.Volume,
			Interval:  interval,
			Timestamp: dao.Bucket,
		})
	}
	return candles
}
