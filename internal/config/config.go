// Package config holds the settings of a backtest run. Values come from the
// defaults below, then an optional YAML file, then the command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"smacross/internal/repository"
	"smacross/types"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Tickers        []string `yaml:"tickers"`
	Start          string   `yaml:"start"`
	End            string   `yaml:"end"`
	Interval       string   `yaml:"interval"`
	ShortWindow    int      `yaml:"short_window"`
	LongWindow     int      `yaml:"long_window"`
	InitialCapital string   `yaml:"initial_capital"`
	// PeriodsPerYear overrides the annualization implied by Interval when > 0.
	PeriodsPerYear float64 `yaml:"periods_per_year"`

	Source      string `yaml:"source"`
	DatabaseURL string `yaml:"database_url"`
	CSVDir      string `yaml:"csv_dir"`

	OutputDir   string `yaml:"output_dir"`
	SummaryFile string `yaml:"summary_file"`
	ChartFile   string `yaml:"chart_file"`
	CurveFile   string `yaml:"curve_file"`
	Concurrency int    `yaml:"concurrency"`
	Progress    bool   `yaml:"progress"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		Tickers:        []string{"AAPL"},
		Start:          "2018-01-01",
		End:            "2024-01-01",
		Interval:       string(types.Day),
		ShortWindow:    20,
		LongWindow:     100,
		InitialCapital: "10000",
		Source:         SourceCSV,
		CSVDir:         "data",
		OutputDir:      ".",
		SummaryFile:    "backtest_summary.txt",
		ChartFile:      "equity_curve.png",
		Concurrency:    4,
		Progress:       true,
		LogLevel:       "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path, if any.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env %s: %w", f, err)
		}
	}
	return nil
}

func (c Config) StartTime() (time.Time, error) {
	return parseDate("start", c.Start)
}

func (c Config) EndTime() (time.Time, error) {
	return parseDate("end", c.End)
}

func (c Config) BarInterval() (types.Interval, error) {
	return types.ParseInterval(c.Interval)
}

func (c Config) Capital() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.InitialCapital)
	if err != nil {
		return decimal.Zero, fmt.Errorf("initial capital %q: %w", c.InitialCapital, err)
	}
	return d, nil
}

// AnnualizationFactor is PeriodsPerYear when set, otherwise derived from the
// bar interval.
func (c Config) AnnualizationFactor() (float64, error) {
	if c.PeriodsPerYear > 0 {
		return c.PeriodsPerYear, nil
	}
	iv, err := c.BarInterval()
	if err != nil {
		return 0, err
	}
	return iv.PeriodsPerYear(), nil
}

func (c Config) Validate() error {
	var errs []error
	if len(c.Tickers) == 0 {
		errs = append(errs, errors.New("no tickers"))
	}
	start, err := c.StartTime()
	if err != nil {
		errs = append(errs, err)
	}
	end, err := c.EndTime()
	if err != nil {
		errs = append(errs, err)
	}
	if err == nil && !end.After(start) {
		errs = append(errs, fmt.Errorf("end %s is not after start %s", c.End, c.Start))
	}
	iv, ivErr := c.BarInterval()
	if ivErr != nil {
		errs = append(errs, ivErr)
	}
	if c.ShortWindow < 1 || c.LongWindow < 1 {
		errs = append(errs, fmt.Errorf("windows %d/%d must be positive", c.ShortWindow, c.LongWindow))
	}
	if capital, err := c.Capital(); err != nil {
		errs = append(errs, err)
	} else if !capital.IsPositive() {
		errs = append(errs, fmt.Errorf("initial capital %s must be positive", capital))
	}
	switch c.Source {
	case SourceCSV:
		if c.CSVDir == "" {
			errs = append(errs, errors.New("csv source needs csv_dir"))
		}
		if ivErr == nil && !repository.CSVSupports(iv) {
			errs = append(errs, fmt.Errorf("csv source cannot serve interval %s", iv))
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("postgres source needs database_url"))
		}
		if ivErr == nil && !repository.PostgresSupports(iv) {
			errs = append(errs, fmt.Errorf("postgres source cannot serve interval %s", iv))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q", c.Source))
	}
	return errors.Join(errs...)
}

// NormalizedTickers upper-cases and de-duplicates the tickers, keeping order.
func (c Config) NormalizedTickers() []string {
	seen := make(map[string]bool, len(c.Tickers))
	var out []string
	for _, t := range c.Tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func parseDate(name, s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s date %q: %w", name, s, err)
	}
	return t, nil
}
