package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/writer"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func computeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compute",
		Usage: "Compute indicators over bars from files or the backend and write them out",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Parquet or CSV `FILE` with time, open, high, low, close columns; repeatable. Fetches from the backend when omitted",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Symbol to compute; required for the backend and for files holding several symbols",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "First bar date (`YYYY-MM-DD`)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Last bar date (`YYYY-MM-DD`)",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Bar interval requested from the backend",
				Value: "1d",
			},
			&cli.StringFlag{
				Name:  "period",
				Usage: "Lookback requested from the backend when no dates are given (e.g. 1y)",
			},
			&cli.StringSliceFlag{
				Name:    "indicator",
				Aliases: []string{"I"},
				Usage:   "Indicator as `NAME[:key=value,...]`, e.g. macd:fastPeriod=8; repeatable. Defaults to the configured indicators",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (json, csv, parquet); overrides the config",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file, or directory when several inputs are given; - for stdout",
			},
			&cli.IntFlag{
				Name:  "precision",
				Usage: "Decimal places kept in the output; overrides the config",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "finite",
				Usage: "Drop NaN and infinite values instead of writing them as empty",
			},
		},
		Action: computeAction,
	}
}

// computeJob is one overlay to build and write.
type computeJob struct {
	input  string
	output config.OutputConfig
}

func computeAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	indicators, err := indicatorConfigs(cmd.StringSlice("indicator"), a.config.Indicators)
	if err != nil {
		return err
	}

	output := a.config.Output
	if format := cmd.String("format"); format != "" {
		output.Format = config.OutputFormat(format)
	}

	if path := cmd.String("output"); path != "" {
		output.Path = path
	}

	if precision := int(cmd.Int("precision")); precision >= 0 {
		output.Precision = precision
	}

	builder := overlay.NewBuilder(nil, a.metrics, a.logger)
	finite := cmd.Bool("finite")

	inputs := cmd.StringSlice("input")
	if len(inputs) == 0 {
		client, err := newBackend(a)
		if err != nil {
			return err
		}

		req := marketdata.StockDataRequest{
			Symbol:    cmd.String("symbol"),
			StartDate: cmd.String("start"),
			EndDate:   cmd.String("end"),
			Period:    cmd.String("period"),
			Interval:  cmd.String("interval"),
		}

		ov, err := builder.Fetch(ctx, client, req, indicators)
		if err != nil {
			return err
		}

		return writeResult(a, output, ov, finite)
	}

	start, err := parseDateFlag(cmd.String("start"))
	if err != nil {
		return err
	}

	end, err := parseDateFlag(cmd.String("end"))
	if err != nil {
		return err
	}

	jobs, err := planJobs(inputs, output)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if len(jobs) > 1 {
		bar = progressbar.Default(int64(len(jobs)), "computing")
	}

	for _, job := range jobs {
		ds, err := datasource.NewDataSource(a.logger)
		if err != nil {
			return err
		}

		bars, symbol, err := loadFileBars(ds, job.input, cmd.String("symbol"), start, end)
		ds.Close()

		if err != nil {
			return errors.Wrapf(errors.GetCode(err), err, "%s", job.input)
		}

		ov, err := builder.Build(bars, indicators)
		if err != nil {
			return err
		}

		ov.Symbol = symbol

		if err := writeResult(a, job.output, ov, finite); err != nil {
			return err
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	return nil
}

// planJobs pairs each input with its output. Several inputs write into the
// output directory, one file per input named after it.
func planJobs(inputs []string, output config.OutputConfig) ([]computeJob, error) {
	if len(inputs) == 1 {
		return []computeJob{{input: inputs[0], output: output}}, nil
	}

	dir := output.Path
	if dir == "" || dir == writer.StdoutPath {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", dir)
	}

	jobs := make([]computeJob, 0, len(inputs))

	for _, input := range inputs {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

		out := output
		out.Path = filepath.Join(dir, base+"."+string(output.Format))
		jobs = append(jobs, computeJob{input: input, output: out})
	}

	return jobs, nil
}

// loadFileBars reads one symbol's bars from path. An empty symbol is fine
// when the file holds at most one symbol.
func loadFileBars(ds datasource.DataSource, path, symbol string, start, end optional.Option[time.Time]) ([]types.Bar, string, error) {
	if err := ds.Initialize(path); err != nil {
		return nil, "", err
	}

	query := datasource.Query{Start: start, End: end}

	if symbol == "" {
		symbols, err := ds.Symbols()
		if err != nil {
			return nil, "", err
		}

		if len(symbols) > 1 {
			return nil, "", errors.Newf(errors.ErrCodeInvalidParameter, "file holds %d symbols (%s), pick one with --symbol", len(symbols), strings.Join(symbols, ", "))
		}

		if len(symbols) == 1 {
			symbol = symbols[0]
		}
	}

	if symbol != "" {
		query.Symbol = optional.Some(symbol)
	}

	count, err := ds.Count(query)
	if err != nil {
		return nil, "", err
	}

	if count == 0 {
		return nil, "", errors.New(errors.ErrCodeDataNotFound, "no bars match the query")
	}

	bars, err := ds.ReadBars(query)
	if err != nil {
		return nil, "", err
	}

	return bars, symbol, nil
}

func writeResult(a *app, output config.OutputConfig, ov overlay.Overlay, finite bool) error {
	if finite {
		ov = ov.FilterFinite()
	}

	w, err := writer.NewWriter(output, a.logger)
	if err != nil {
		return err
	}

	path, err := writer.WriteOverlay(w, ov)
	if err != nil {
		return err
	}

	a.logger.Info("Wrote indicators",
		zap.String("symbol", ov.Symbol),
		zap.Int("indicators", len(ov.Indicators)),
		zap.String("path", path),
	)

	return nil
}
