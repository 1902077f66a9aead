package engine

import (
	"fmt"
	"smacross/types"
	"time"

	"github.com/shopspring/decimal"
)

type DataFeedConfig struct {
	ticker   string
	interval types.Interval
	start    time.Time
	end      time.Time
}

func NewDataFeedConfigs(feeds ...*DataFeedConfig) []*DataFeedConfig {
	return feeds
}

func NewDataFeedConfig(ticker string, interval types.Interval, start, end time.Time) *DataFeedConfig {
	return &DataFeedConfig{
		ticker:   ticker,
		interval: interval,
		start:    start,
		end:      end,
	}
}

type StrategyConfig struct {
	shortWindow    int
	longWindow     int
	periodsPerYear float64
	initialCapital decimal.Decimal
}

// NewStrategyConfig configures the crossover. periodsPerYear annualizes the
// Sharpe ratio; initialCapital sizes the trade ledger.
func NewStrategyConfig(shortWindow, longWindow int, periodsPerYear float64, initialCapital decimal.Decimal) *StrategyConfig {
	return &StrategyConfig{
		shortWindow:    shortWindow,
		longWindow:     longWindow,
		periodsPerYear: periodsPerYear,
		initialCapital: initialCapital,
	}
}

// DefaultStrategyConfig is the 20/100 daily crossover on 10,000 of capital.
func DefaultStrategyConfig() *StrategyConfig {
	return NewStrategyConfig(20, 100, TradingDaysPerYear, decimal.NewFromInt(10_000))
}

func (c *StrategyConfig) validate() error {
	if c.shortWindow < 1 || c.longWindow < 1 {
		return fmt.Errorf("windows %d/%d must be positive: %w", c.shortWindow, c.longWindow, types.ErrInvalidPrecondition)
	}
	if c.periodsPerYear <= 0 {
		return fmt.Errorf("periods per year %v: %w", c.periodsPerYear, types.ErrInvalidPrecondition)
	}
	if !c.initialCapital.GreaterThan(decimal.Zero) {
		return fmt.Errorf("initial capital %s: %w", c.initialCapital, types.ErrInvalidPrecondition)
	}
	return nil
}

type ReportingConfig struct {
	outputDir   string
	summaryFile string
	chartFile   string
	curveFile   string
	concurrency int
	progress    bool
}

// NewReportingConfig sets where artifacts go. Empty file names disable that
// artifact. With several tickers each file name is prefixed by the ticker.
func NewReportingConfig(outputDir, summaryFile, chartFile, curveFile string, concurrency int, progress bool) *ReportingConfig {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReportingConfig{
		outputDir:   outputDir,
		summaryFile: summaryFile,
		chartFile:   chartFile,
		curveFile:   curveFile,
		concurrency: concurrency,
		progress:    progress,
	}
}
