package main

import (
	"fmt"
	"os"
	"smacross/internal/config"
	"smacross/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "smacross",
		Usage: "backtest a moving average crossover on daily closes",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"SMACROSS_CONFIG"}},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn, error", EnvVars: []string{"SMACROSS_LOG_LEVEL"}},
			&cli.StringFlag{Name: "log-file", Usage: "append logs to this file instead of stderr", EnvVars: []string{"SMACROSS_LOG_FILE"}},
		},
		Commands: []*cli.Command{
			runCommand(),
			importCommand(),
		},
	}
}

// loadConfig reads the config file named by --config and applies the global
// logging flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	return cfg, nil
}

func openLogger(cfg config.Config) (*logrus.Logger, func() error, error) {
	return logging.Open(cfg.LogFile, cfg.LogLevel)
}
