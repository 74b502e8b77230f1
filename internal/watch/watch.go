// Package watch keeps an overlay fresh for one symbol, either by re-fetching
// bars on a cron schedule or by following the backend socket.
package watch

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"go.uber.org/zap"
)

// Publisher receives every overlay the watcher builds.
type Publisher interface {
	Publish(ov overlay.Overlay) error
}

// BarStream pushes live bars for a symbol.
type BarStream interface {
	Subscribe(ctx context.Context, symbol, interval string) iter.Seq2[types.Bar, error]
}

// Config is what the watcher refreshes.
type Config struct {
	Request    marketdata.StockDataRequest
	Cron       string
	Indicators []config.IndicatorConfig
	// MaxBars caps the window kept while following a stream; 0 keeps everything.
	MaxBars int
}

// ConfigFrom builds the watcher config from the application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Request: marketdata.StockDataRequest{
			Symbol:   cfg.Watch.Symbol,
			Interval: cfg.Watch.Interval,
			Period:   cfg.Watch.Period,
		},
		Cron:       cfg.Watch.Cron,
		Indicators: cfg.Indicators,
		MaxBars:    cfg.Watch.MaxBars,
	}
}

// Watcher rebuilds the overlay on a schedule and publishes it.
type Watcher struct {
	cron      *cron.Cron
	builder   *overlay.Builder
	source    marketdata.BarSource
	publisher Publisher
	config    Config
	metrics   *metrics.Metrics
	logger    *logger.Logger

	mu   sync.Mutex
	bars []types.Bar
	last overlay.Overlay
	runs int
}

// NewWatcher validates cfg and creates a watcher.
func NewWatcher(cfg Config, builder *overlay.Builder, source marketdata.BarSource, publisher Publisher, m *metrics.Metrics, log *logger.Logger) (*Watcher, error) {
	if source == nil || publisher == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "watcher needs a bar source and a publisher")
	}

	if err := cfg.Request.Validate(); err != nil {
		return nil, err
	}

	if len(cfg.Indicators) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "watcher needs at least one indicator")
	}

	if m == nil {
		m = metrics.NewMetrics()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	if builder == nil {
		builder = overlay.NewBuilder(nil, m, log)
	}

	return &Watcher{
		cron:      cron.New(cron.WithSeconds()),
		builder:   builder,
		source:    source,
		publisher: publisher,
		config:    cfg,
		metrics:   m,
		logger:    log.Named("watch"),
	}, nil
}

// Start schedules RunOnce on the configured cron spec. ctx bounds each run.
func (w *Watcher) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.config.Cron, func() {
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger.Error("Watch run failed", zap.Error(err))
		}
	})
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid cron spec %q", w.config.Cron)
	}

	w.cron.Start()
	w.logger.Info("Watcher started",
		zap.String("symbol", w.config.Request.Symbol),
		zap.String("cron", w.config.Cron),
	)

	return nil
}

// Stop stops the schedule. The returned context is done once running jobs finish.
func (w *Watcher) Stop() context.Context {
	ctx := w.cron.Stop()
	w.logger.Info("Watcher stopped")

	return ctx
}

// RunOnce fetches bars, rebuilds the overlay and publishes it.
func (w *Watcher) RunOnce(ctx context.Context) (overlay.Overlay, error) {
	bars, err := w.fetch(ctx)
	if err != nil {
		w.metrics.WatchRuns.WithLabelValues("error").Inc()

		return overlay.Overlay{}, err
	}

	w.mu.Lock()
	w.bars = append([]types.Bar(nil), bars...)
	w.mu.Unlock()

	return w.rebuild(bars)
}

func (w *Watcher) fetch(ctx context.Context) ([]types.Bar, error) {
	start := time.Now()

	bars, err := w.source.GetStockData(ctx, w.config.Request)
	w.metrics.BarFetchDur.Observe(time.Since(start).Seconds())

	if err != nil {
		w.metrics.BarFetchErrors.Inc()

		return nil, err
	}

	return bars, nil
}

func (w *Watcher) rebuild(bars []types.Bar) (overlay.Overlay, error) {
	ov, err := w.builder.Build(bars, w.config.Indicators)
	if err != nil {
		w.metrics.WatchRuns.WithLabelValues("error").Inc()

		return overlay.Overlay{}, err
	}

	ov.Symbol = w.config.Request.Symbol
	ov.Interval = w.config.Request.Interval

	if err := w.publisher.Publish(ov); err != nil {
		w.metrics.WatchRuns.WithLabelValues("error").Inc()

		return overlay.Overlay{}, err
	}

	w.mu.Lock()
	w.last = ov
	w.runs++
	w.mu.Unlock()

	w.metrics.WatchRuns.WithLabelValues("ok").Inc()
	w.logger.Debug("Published overlay", zap.String("symbol", ov.Symbol), zap.Int("bars", ov.Bars))

	return ov, nil
}

// Follow seeds the window with RunOnce, then applies every streamed bar and
// republishes. A bar with the same time as the last one replaces it; older
// bars are ignored. Follow returns nil when the stream ends or ctx is done.
func (w *Watcher) Follow(ctx context.Context, stream BarStream) error {
	if _, err := w.RunOnce(ctx); err != nil {
		return err
	}

	for bar, err := range stream.Subscribe(ctx, w.config.Request.Symbol, w.config.Request.Interval) {
		if err != nil {
			return err
		}

		bars, ok := w.apply(bar)
		if !ok {
			continue
		}

		if _, err := w.rebuild(bars); err != nil {
			return err
		}
	}

	return nil
}

// apply merges bar into the window and returns a snapshot of it.
func (w *Watcher) apply(bar types.Bar) ([]types.Bar, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.bars)

	switch {
	case n > 0 && bar.Time.Equal(w.bars[n-1].Time):
		w.bars[n-1] = bar
	case n == 0 || bar.Time.After(w.bars[n-1].Time):
		w.bars = append(w.bars, bar)
	default:
		return nil, false
	}

	if w.config.MaxBars > 0 && len(w.bars) > w.config.MaxBars {
		w.bars = append([]types.Bar(nil), w.bars[len(w.bars)-w.config.MaxBars:]...)
	}

	return append([]types.Bar(nil), w.bars...), true
}

// Last returns the most recently published overlay.
func (w *Watcher) Last() (overlay.Overlay, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.last, w.runs > 0
}
