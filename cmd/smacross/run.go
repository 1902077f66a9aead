package main

import (
	"context"
	"fmt"
	"smacross/internal/config"
	"smacross/internal/engine"
	"smacross/internal/repository"
	"smacross/types"
	"time"

	"github.com/urfave/cli/v2"
)

type priceStore interface {
	GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error)
	GetAggregates(ctx context.Context, assetID int, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error)
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run the backtest and write the summary, chart and curve",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "ticker", Aliases: []string{"t"}, Usage: "ticker to backtest, repeatable", EnvVars: []string{"SMACROSS_TICKERS"}},
			&cli.StringFlag{Name: "start", Usage: "first date, inclusive (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "end", Usage: "last date, exclusive (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "interval", Usage: "bar interval (D, W, M, 60...)"},
			&cli.IntFlag{Name: "short", Usage: "short moving average window"},
			&cli.IntFlag{Name: "long", Usage: "long moving average window"},
			&cli.StringFlag{Name: "capital", Usage: "initial capital"},
			&cli.Float64Flag{Name: "periods-per-year", Usage: "annualization factor, defaults from the interval"},
			&cli.StringFlag{Name: "source", Usage: "price source: csv or postgres", EnvVars: []string{"SMACROSS_SOURCE"}},
			&cli.StringFlag{Name: "db-url", Usage: "postgres connection string", EnvVars: []string{"DATABASE_URL"}},
			&cli.StringFlag{Name: "csv-dir", Usage: "directory of <TICKER>.csv files", EnvVars: []string{"SMACROSS_CSV_DIR"}},
			&cli.StringFlag{Name: "out-dir", Usage: "directory for artifacts"},
			&cli.StringFlag{Name: "summary", Usage: "summary file name, empty to skip"},
			&cli.StringFlag{Name: "chart", Usage: "chart file name, empty to skip"},
			&cli.StringFlag{Name: "curve", Usage: "per-bar CSV file name, empty to skip"},
			&cli.IntFlag{Name: "concurrency", Usage: "tickers backtested at once"},
			&cli.BoolFlag{Name: "no-progress", Usage: "hide the progress bar"},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyRunFlags(c, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	start, _ := cfg.StartTime()
	end, _ := cfg.EndTime()
	interval, _ := cfg.BarInterval()
	capital, _ := cfg.Capital()
	periods, _ := cfg.AnnualizationFactor()

	var feeds []*engine.DataFeedConfig
	for _, ticker := range cfg.NormalizedTickers() {
		feeds = append(feeds, engine.NewDataFeedConfig(ticker, interval, start, end))
	}

	ctx := c.Context
	var store priceStore
	switch cfg.Source {
	case config.SourcePostgres:
		db, err := repository.NewDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		store = db
	default:
		store = repository.NewCSVStore(cfg.CSVDir)
	}

	eng := engine.NewEngine(
		engine.NewDataFeedConfigs(feeds...),
		engine.NewStrategyConfig(cfg.ShortWindow, cfg.LongWindow, periods, capital),
		engine.NewReportingConfig(cfg.OutputDir, cfg.SummaryFile, cfg.ChartFile, cfg.CurveFile, cfg.Concurrency, cfg.Progress),
		store,
		log,
	)
	results, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Fprintf(c.App.Writer, "%-8s total %8.2f%%  buy&hold %8.2f%%  sharpe %6.2f  max dd %8.2f%%  trades %d\n",
			r.Ticker, r.Metrics.TotalReturnPct, r.BuyHoldReturnPct(), r.Metrics.Sharpe, r.Metrics.MaxDrawdownPct, len(r.Trades))
	}
	return nil
}

func applyRunFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("ticker") {
		cfg.Tickers = c.StringSlice("ticker")
	}
	setString(c, "start", &cfg.Start)
	setString(c, "end", &cfg.End)
	setString(c, "interval", &cfg.Interval)
	setString(c, "capital", &cfg.InitialCapital)
	setString(c, "source", &cfg.Source)
	setString(c, "db-url", &cfg.DatabaseURL)
	setString(c, "csv-dir", &cfg.CSVDir)
	setString(c, "out-dir", &cfg.OutputDir)
	setString(c, "summary", &cfg.SummaryFile)
	setString(c, "chart", &cfg.ChartFile)
	setString(c, "curve", &cfg.CurveFile)
	if c.IsSet("short") {
		cfg.ShortWindow = c.Int("short")
	}
	if c.IsSet("long") {
		cfg.LongWindow = c.Int("long")
	}
	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("periods-per-year") {
		cfg.PeriodsPerYear = c.Float64("periods-per-year")
	}
	if c.Bool("no-progress") {
		cfg.Progress = false
	}
}

func setString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}
