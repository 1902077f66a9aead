package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"smacross/types"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type dataStore interface {
	GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error)
	GetAggregates(ctx context.Context, assetID int, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error)
}

type Engine struct {
	db              dataStore
	feeds           []*DataFeedConfig
	strategyConfig  *StrategyConfig
	reportingConfig *ReportingConfig
	log             logrus.FieldLogger
}

func NewEngine(feeds []*DataFeedConfig, strategyConfig *StrategyConfig, reportingConfig *ReportingConfig, db dataStore, log logrus.FieldLogger) *Engine {
	return &Engine{
		db:              db,
		feeds:           feeds,
		strategyConfig:  strategyConfig,
		reportingConfig: reportingConfig,
		log:             log,
	}
}

// Run backtests every feed and writes its artifacts. Feeds run concurrently;
// the first failure cancels the others and is returned. Results are in feed
// order.
func (e *Engine) Run(ctx context.Context) ([]*Result, error) {
	if len(e.feeds) == 0 {
		return nil, fmt.Errorf("no data feeds configured")
	}
	if err := e.strategyConfig.validate(); err != nil {
		return nil, err
	}

	results := make([]*Result, len(e.feeds))
	bar := e.initProgressBar(len(e.feeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.reportingConfig.concurrency)
	for i, feed := range e.feeds {
		i, feed := i, feed
		g.Go(func() error {
			res, err := e.runFeed(ctx, feed)
			if err != nil {
				return err
			}
			results[i] = res
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return results, nil
}

func (e *Engine) runFeed(ctx context.Context, feed *DataFeedConfig) (*Result, error) {
	log := e.log.WithFields(logrus.Fields{
		"ticker": feed.ticker,
		"start":  feed.start.Format(time.DateOnly),
		"end":    feed.end.Format(time.DateOnly),
	})

	prices, err := e.loadFeed(ctx, feed)
	if err != nil {
		return nil, err
	}
	log.WithField("bars", prices.Len()).Debug("prices loaded")

	res, err := Backtest(feed.ticker, prices, e.strategyConfig)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"total_return_pct": res.Metrics.TotalReturnPct,
		"sharpe":           res.Metrics.Sharpe,
		"max_drawdown_pct": res.Metrics.MaxDrawdownPct,
		"trades":           len(res.Trades),
	}).Info("backtest finished")

	if err := e.writeArtifacts(feed, res); err != nil {
		return nil, fmt.Errorf("%s: %w", feed.ticker, err)
	}
	return res, nil
}

func (e *Engine) loadFeed(ctx context.Context, feed *DataFeedConfig) (types.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return types.PriceSeries{}, err
	}
	asset, err := e.db.GetAssetByTicker(ctx, feed.ticker)
	if err != nil {
		return types.PriceSeries{}, err
	}
	candles, err := e.db.GetAggregates(ctx, asset.ID, feed.ticker, feed.interval, feed.start, feed.end)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("%s %s..%s: %w", feed.ticker,
			feed.start.Format(time.DateOnly), feed.end.Format(time.DateOnly), err)
	}
	prices, err := types.PriceSeriesFromCandles(candles)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("%s: %w", feed.ticker, err)
	}
	return prices, nil
}

func (e *Engine) writeArtifacts(feed *DataFeedConfig, res *Result) error {
	rc := e.reportingConfig
	chartPath := e.artifactPath(rc.chartFile, feed.ticker)
	if chartPath != "" {
		if err := RenderEquityChart(chartPath, res.EquityChart(feed.interval)); err != nil {
			return err
		}
		e.log.WithField("path", chartPath).Debug("chart written")
	}
	if path := e.artifactPath(rc.curveFile, feed.ticker); path != "" {
		if err := writeCurveCSVFile(path, res); err != nil {
			return err
		}
		e.log.WithField("path", path).Debug("curve written")
	}
	if path := e.artifactPath(rc.summaryFile, feed.ticker); path != "" {
		meta := ReportMeta{Ticker: feed.ticker, Start: feed.start, End: feed.end, ChartPath: chartPath}
		if err := writeSummaryFile(path, meta, res); err != nil {
			return err
		}
		e.log.WithField("path", path).Debug("summary written")
	}
	return nil
}

// artifactPath resolves an artifact name inside the output directory,
// prefixing the ticker when more than one feed shares the directory.
func (e *Engine) artifactPath(name, ticker string) string {
	if name == "" {
		return ""
	}
	if len(e.feeds) > 1 {
		name = ticker + "_" + name
	}
	return filepath.Join(e.reportingConfig.outputDir, name)
}

func (e *Engine) initProgressBar(maxTicks int) *progressbar.ProgressBar {
	if !e.reportingConfig.progress {
		return nil
	}
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
