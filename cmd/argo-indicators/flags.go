package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/rxtech-lab/argo-indicators/pkg/marketdata"
)

// parseIndicatorFlag parses "name" or "name:key=value,key=value", e.g.
// "macd:fastPeriod=8,slowPeriod=21".
func parseIndicatorFlag(value string) (config.IndicatorConfig, error) {
	name, rest, hasParams := strings.Cut(strings.TrimSpace(value), ":")
	if name == "" {
		return config.IndicatorConfig{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid indicator %q", value)
	}

	cfg := config.IndicatorConfig{Name: name}
	if !hasParams {
		return cfg, nil
	}

	cfg.Params = make(map[string]float64)

	for _, pair := range strings.Split(rest, ",") {
		key, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || key == "" {
			return config.IndicatorConfig{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid parameter %q in %q, want key=value", pair, value)
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return config.IndicatorConfig{}, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "parameter %s of %s is not a number", key, name)
		}

		cfg.Params[key] = v
	}

	return cfg, nil
}

// indicatorConfigs returns the --indicator flags, or the configured
// indicators when none were given.
func indicatorConfigs(values []string, fallback []config.IndicatorConfig) ([]config.IndicatorConfig, error) {
	if len(values) == 0 {
		return fallback, nil
	}

	configs := make([]config.IndicatorConfig, 0, len(values))

	for _, v := range values {
		cfg, err := parseIndicatorFlag(v)
		if err != nil {
			return nil, err
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}

// parseDateFlag parses an optional date using the formats the backend accepts.
func parseDateFlag(value string) (optional.Option[time.Time], error) {
	if value == "" {
		return optional.None[time.Time](), nil
	}

	t, err := marketdata.ParseBarTime(value)
	if err != nil {
		return optional.None[time.Time](), err
	}

	return optional.Some(t), nil
}
