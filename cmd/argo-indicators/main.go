package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/urfave/cli/v3"
)

// app holds what every command needs once flags are parsed.
type app struct {
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// newApp loads the config named by --config and builds the logger. Logs go to
// stderr so that command output on stdout stays machine readable.
func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log, err := logger.NewLoggerWithOutput(cfg.Log.Level, "stderr")
	if err != nil {
		return nil, err
	}

	return &app{
		config:  cfg,
		logger:  log,
		metrics: metrics.NewMetrics(),
	}, nil
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "argo-indicators",
		Usage:   "Compute technical indicators over OHLCV bars",
		Version: version.GetVersion(),

		// -I values carry their own commas ("macd:fastPeriod=8,slowPeriod=21").
		DisableSliceFlagSeparator: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config `FILE`",
				Sources: cli.EnvVars("ARGO_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error); overrides the config",
			},
		},
		Commands: []*cli.Command{
			computeCommand(),
			serveCommand(),
			watchCommand(),
			listCommand(),
			schemaCommand(),
			configCommand(),
			versionCommand(),
		},
	}
}

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
