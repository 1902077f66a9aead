package main

import (
	"fmt"
	"os"
	"smacross/internal/repository"
	"smacross/types"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load a daily CSV export into the postgres price store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ticker", Aliases: []string{"t"}, Required: true},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "CSV with Date and Close columns", Required: true},
			&cli.StringFlag{Name: "name", Usage: "asset name, defaults to the ticker"},
			&cli.StringFlag{Name: "type", Usage: "STOCK, ETF or CRYPTO", Value: string(types.AssetTypeStock)},
			&cli.StringFlag{Name: "db-url", Usage: "postgres connection string", EnvVars: []string{"DATABASE_URL"}},
		},
		Action: importAction,
	}
}

func importAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("db-url") {
		cfg.DatabaseURL = c.String("db-url")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("import needs --db-url or DATABASE_URL")
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ticker := strings.ToUpper(c.String("ticker"))
	f, err := os.Open(c.String("file"))
	if err != nil {
		return err
	}
	defer f.Close()
	candles, err := repository.ReadCandlesCSV(f, ticker)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.String("file"), err)
	}
	if len(candles) == 0 {
		return fmt.Errorf("%s: %w", c.String("file"), repository.ErrNoCandles)
	}

	ctx := c.Context
	db, err := repository.NewDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	assetType, err := types.ParseAssetType(c.String("type"))
	if err != nil {
		return err
	}
	name := c.String("name")
	if name == "" {
		name = ticker
	}
	assetID, err := db.UpsertAsset(ctx, types.Asset{Ticker: ticker, Name: name, Type: assetType})
	if err != nil {
		return err
	}
	n, err := db.InsertCandles(ctx, assetID, candles)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"ticker":   ticker,
		"asset_id": assetID,
		"rows":     n,
		"first":    candles[0].Timestamp.Format("2006-01-02"),
		"last":     candles[len(candles)-1].Timestamp.Format("2006-01-02"),
	}).Info("candles imported")
	return nil
}
