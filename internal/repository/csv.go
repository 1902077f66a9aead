package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"smacross/types"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var csvDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	time.DateTime,
}

// CSVStore serves daily bars from <dir>/<TICKER>.csv files, e.g. yfinance
// exports. The header must name a Date and a Close column.
type CSVStore struct {
	dir string
}

func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

func (s *CSVStore) path(ticker string) string {
	return filepath.Join(s.dir, strings.ToUpper(ticker)+".csv")
}

func (s *CSVStore) GetAssetByTicker(_ context.Context, ticker string) (*types.Asset, error) {
	info, err := os.Stat(s.path(ticker))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	return &types.Asset{
		Ticker:     strings.ToUpper(ticker),
		Name:       ticker,
		Type:       types.AssetTypeStock,
		ModifiedAt: info.ModTime(),
	}, nil
}

// CSVSupports reports whether CSV files can serve bars of interval iv.
func CSVSupports(iv types.Interval) bool {
	return iv == types.Day
}

// GetAggregates returns the file's bars within [start, end). A zero end is
// unbounded. Only daily files are supported.
func (s *CSVStore) GetAggregates(ctx context.Context, assetID int, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error) {
	if !CSVSupports(interval) {
		return nil, ErrIntervalNotSupported
	}
	f, err := os.Open(s.path(ticker))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	defer f.Close()

	candles, err := ReadCandlesCSV(f, ticker)
	if err != nil {
		return nil, err
	}
	var out []types.Candle
	for _, c := range candles {
		if c.Timestamp.Before(start) || (!end.IsZero() && !c.Timestamp.Before(end)) {
			continue
		}
		c.AssetID = assetID
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, ErrNoCandles
	}
	return out, nil
}

// ReadCandlesCSV parses daily bars sorted by date. Rows with a missing close
// are dropped; duplicate dates are an error.
func ReadCandlesCSV(r io.Reader, ticker string) ([]types.Candle, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoCandles
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	dateCol, ok := cols["date"]
	if !ok {
		if dateCol, ok = cols["datetime"]; !ok {
			return nil, fmt.Errorf("csv header %v has no date column", header)
		}
	}
	closeCol, ok := cols["close"]
	if !ok {
		return nil, fmt.Errorf("csv header %v has no close column", header)
	}

	var candles []types.Candle
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		raw := field(rec, closeCol)
		if isMissing(raw) {
			continue
		}
		closePrice, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: close %q: %w", line, raw, err)
		}
		ts, err := parseDate(field(rec, dateCol))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		c := types.Candle{
			Ticker:    strings.ToUpper(ticker),
			Close:     closePrice,
			Interval:  types.Day,
			Timestamp: ts,
		}
		c.Open = optionalDecimal(rec, cols, "open", closePrice)
		c.High = optionalDecimal(rec, cols, "high", closePrice)
		c.Low = optionalDecimal(rec, cols, "low", closePrice)
		c.Volume = optionalDecimal(rec, cols, "volume", decimal.Zero)
		candles = append(candles, c)
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp.Equal(candles[i-1].Timestamp) {
			return nil, fmt.Errorf("duplicate date %s: %w", candles[i].Timestamp.Format(time.DateOnly), types.ErrInvalidPrecondition)
		}
	}
	return candles, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "nan", "na", "none":
		return true
	}
	return false
}

func optionalDecimal(rec []string, cols map[string]int, name string, fallback decimal.Decimal) decimal.Decimal {
	i, ok := cols[name]
	if !ok {
		return fallback
	}
	raw := field(rec, i)
	if isMissing(raw) {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Keep the calendar day as written in the exchange's zone.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
