package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is a stored bar. Only Close feeds the backtest; the remaining fields
// round-trip through the price store.
type Candle struct {
	AssetID   int             `json:"assetId"`
	Ticker    string          `json:"ticker"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	Interval  Interval        `json:"interval"`
	Timestamp time.Time       `json:"timestamp"`
}

