package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/server"
	"github.com/rxtech-lab/argo-indicators/internal/watch"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var watchFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "symbol",
		Usage: "Symbol to watch; overrides watch.symbol",
	},
	&cli.StringFlag{
		Name:  "cron",
		Usage: "Refresh schedule with seconds, e.g. \"0 */5 * * * *\"; overrides watch.cron",
	},
	&cli.BoolFlag{
		Name:  "follow",
		Usage: "Follow the backend socket instead of polling on the schedule",
	},
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API; also watches watch.symbol when set",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address; overrides server.addr",
			},
		}, watchFlags...),
		Action: serveAction,
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "Keep recomputing indicators for one symbol and write each result",
		Flags:  watchFlags,
		Action: watchAction,
	}
}

// writerPublisher writes every overlay through the configured output writer.
type writerPublisher struct {
	app    *app
	output config.OutputConfig
}

func (p writerPublisher) Publish(ov overlay.Overlay) error {
	return writeResult(p.app, p.output, ov, false)
}

func applyWatchFlags(cmd *cli.Command, cfg *config.Config) {
	if symbol := cmd.String("symbol"); symbol != "" {
		cfg.Watch.Symbol = symbol
	}

	if spec := cmd.String("cron"); spec != "" {
		cfg.Watch.Cron = spec
	}
}

func newBackend(a *app) (*marketdata.Client, error) {
	return marketdata.NewClient(marketdata.ClientConfig{
		BaseURL:    a.config.Backend.BaseURL,
		Timeout:    a.config.Backend.Timeout,
		RetryCount: 2,
	}, a.logger)
}

// runWatcher polls on the schedule, or follows the socket when follow is set,
// until ctx is done.
func runWatcher(ctx context.Context, a *app, w *watch.Watcher, follow bool) error {
	if follow {
		if a.config.Backend.SocketURL == "" {
			return errSocketURL
		}

		return w.Follow(ctx, marketdata.NewStream(a.config.Backend.SocketURL, a.logger))
	}

	if _, err := w.RunOnce(ctx); err != nil {
		a.logger.Warn("Initial watch run failed", zap.Error(err))
	}

	if err := w.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	<-w.Stop().Done()

	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	applyWatchFlags(cmd, a.config)

	addr := a.config.Server.Addr
	if flagAddr := cmd.String("addr"); flagAddr != "" {
		addr = flagAddr
	}

	client, err := newBackend(a)
	if err != nil {
		return err
	}

	builder := overlay.NewBuilder(nil, a.metrics, a.logger)
	srv := server.NewServer(builder, client, a.metrics, a.logger)

	if err := srv.Start(addr); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.config.Watch.Symbol != "" {
		w, err := watch.NewWatcher(watch.ConfigFrom(a.config), builder, client, srv.Hub(), a.metrics, a.logger)
		if err != nil {
			return err
		}

		go func() {
			if err := runWatcher(ctx, a, w, cmd.Bool("follow")); err != nil {
				a.logger.Error("Watcher stopped", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	applyWatchFlags(cmd, a.config)

	client, err := newBackend(a)
	if err != nil {
		return err
	}

	builder := overlay.NewBuilder(nil, a.metrics, a.logger)
	publisher := writerPublisher{app: a, output: a.config.Output}

	w, err := watch.NewWatcher(watch.ConfigFrom(a.config), builder, client, publisher, a.metrics, a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWatcher(ctx, a, w, cmd.Bool("follow"))
}
