package overlay

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
	"go.uber.org/zap"
)

// Builder recomputes every configured indicator over a bar series.
type Builder struct {
	registry indicator.IndicatorRegistry
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewBuilder creates a Builder. A nil registry uses the builtin indicators; nil
// metrics or logger are replaced with unregistered or no-op ones.
func NewBuilder(registry indicator.IndicatorRegistry, m *metrics.Metrics, log *logger.Logger) *Builder {
	if registry == nil {
		registry = indicator.NewDefaultRegistry()
	}

	if m == nil {
		m = metrics.NewMetrics()
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Builder{
		registry: registry,
		metrics:  m,
		logger:   log.Named("overlay"),
	}
}

// Registry returns the registry the builder resolves indicators from.
func (b *Builder) Registry() indicator.IndicatorRegistry {
	return b.registry
}

// Build computes each configured indicator over bars, in config order. The
// first invalid config aborts the build.
func (b *Builder) Build(bars []types.Bar, configs []config.IndicatorConfig) (Overlay, error) {
	start := time.Now()

	result := Overlay{
		Bars:        len(bars),
		GeneratedAt: time.Now().UTC(),
		Indicators:  make([]IndicatorOverlay, 0, len(configs)),
	}

	for i, cfg := range configs {
		ind, err := b.buildOne(bars, cfg)
		if err != nil {
			b.metrics.IndicatorErrors.WithLabelValues(cfg.Name).Inc()

			return Overlay{}, errors.Wrapf(errors.GetCode(err), err, "indicator %d (%s)", i, cfg.Name)
		}

		result.Indicators = append(result.Indicators, ind)
	}

	b.metrics.OverlayBuildDur.Observe(time.Since(start).Seconds())
	b.logger.Debug("Built overlay",
		zap.Int("bars", len(bars)),
		zap.Int("indicators", len(result.Indicators)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (b *Builder) buildOne(bars []types.Bar, cfg config.IndicatorConfig) (IndicatorOverlay, error) {
	indicatorType, ok := types.ParseIndicatorType(cfg.Name)
	if !ok {
		return IndicatorOverlay{}, errors.Newf(errors.ErrCodeIndicatorNotFound, "unknown indicator %q", cfg.Name)
	}

	descriptor, err := b.registry.GetIndicator(indicatorType)
	if err != nil {
		return IndicatorOverlay{}, err
	}

	start := time.Now()

	out, err := b.registry.Compute(indicatorType, bars, cfg.Params)
	if err != nil {
		return IndicatorOverlay{}, err
	}

	b.metrics.IndicatorComputeDur.WithLabelValues(string(indicatorType)).Observe(time.Since(start).Seconds())

	result := IndicatorOverlay{
		Type:   indicatorType,
		Name:   descriptor.Name,
		Label:  Label(descriptor, out.Params),
		Pane:   PaneFor(indicatorType),
		Params: out.Params,
		Series: make([]Series, 0, len(out.Lines)),
	}

	points := 0

	for _, line := range out.Lines {
		chartPoints := ToChartPoints(line.Points)
		if line.Name == indicator.LineHistogram {
			colorHistogram(chartPoints)
		}

		points += len(chartPoints)
		result.Series = append(result.Series, Series{
			Name:   line.Name,
			Color:  LineColor(line.Name, cfg.Colors),
			Points: chartPoints,
		})
	}

	b.metrics.IndicatorPoints.WithLabelValues(string(indicatorType)).Add(float64(points))

	return result, nil
}

// Fetch loads bars from source and builds the overlay over them.
func (b *Builder) Fetch(ctx context.Context, source marketdata.BarSource, req marketdata.StockDataRequest, configs []config.IndicatorConfig) (Overlay, error) {
	start := time.Now()

	bars, err := source.GetStockData(ctx, req)
	b.metrics.BarFetchDur.Observe(time.Since(start).Seconds())

	if err != nil {
		b.metrics.BarFetchErrors.Inc()

		return Overlay{}, err
	}

	result, err := b.Build(bars, configs)
	if err != nil {
		return Overlay{}, err
	}

	result.Symbol = req.Symbol
	result.Interval = req.Interval

	return result, nil
}
