package indicator

import (
	"math"
	"sort"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Canonical parameter keys. They follow the names the dashboard sends.
const (
	ParamPeriod       = "period"
	ParamPeriod1      = "period1"
	ParamPeriod2      = "period2"
	ParamFastPeriod   = "fastPeriod"
	ParamSlowPeriod   = "slowPeriod"
	ParamSignalPeriod = "signalPeriod"
	ParamFastKPeriod  = "fastKPeriod"
	ParamSlowKPeriod  = "slowKPeriod"
	ParamStdDev       = "stdDev"
)

// Params is the full parameter record shared by every indicator. Each
// descriptor starts from its own fully specified defaults; fields an
// indicator does not recognize stay zero.
type Params struct {
	Period       int     `json:"period,omitempty" yaml:"period,omitempty" jsonschema:"title=Period,description=Lookback window in bars,minimum=1"`
	Period1      int     `json:"period1,omitempty" yaml:"period1,omitempty" jsonschema:"title=Period 1,description=Window of the first line,minimum=1"`
	Period2      int     `json:"period2,omitempty" yaml:"period2,omitempty" jsonschema:"title=Period 2,description=Window of the second line,minimum=1"`
	FastPeriod   int     `json:"fastPeriod,omitempty" yaml:"fastPeriod,omitempty" jsonschema:"title=Fast Period,description=Fast EMA window,minimum=1"`
	SlowPeriod   int     `json:"slowPeriod,omitempty" yaml:"slowPeriod,omitempty" jsonschema:"title=Slow Period,description=Slow EMA window,minimum=1"`
	SignalPeriod int     `json:"signalPeriod,omitempty" yaml:"signalPeriod,omitempty" jsonschema:"title=Signal Period,description=EMA window of the signal line,minimum=1"`
	FastKPeriod  int     `json:"fastKPeriod,omitempty" yaml:"fastKPeriod,omitempty" jsonschema:"title=Fast K Period,description=EMA window of %K,minimum=1"`
	SlowKPeriod  int     `json:"slowKPeriod,omitempty" yaml:"slowKPeriod,omitempty" jsonschema:"title=Slow K Period,description=EMA window of %D,minimum=1"`
	StdDev       float64 `json:"stdDev,omitempty" yaml:"stdDev,omitempty" jsonschema:"title=Standard Deviations,description=Band width multiplier"`
}

// Get returns the value of a canonical parameter key.
func (p Params) Get(key string) (float64, bool) {
	switch key {
	case ParamPeriod:
		return float64(p.Period), true
	case ParamPeriod1:
		return float64(p.Period1), true
	case ParamPeriod2:
		return float64(p.Period2), true
	case ParamFastPeriod:
		return float64(p.FastPeriod), true
	case ParamSlowPeriod:
		return float64(p.SlowPeriod), true
	case ParamSignalPeriod:
		return float64(p.SignalPeriod), true
	case ParamFastKPeriod:
		return float64(p.FastKPeriod), true
	case ParamSlowKPeriod:
		return float64(p.SlowKPeriod), true
	case ParamStdDev:
		return p.StdDev, true
	default:
		return 0, false
	}
}

func (p *Params) set(key string, value float64) error {
	if key == ParamStdDev {
		p.StdDev = value

		return nil
	}

	period, err := toPeriod(key, value)
	if err != nil {
		return err
	}

	switch key {
	case ParamPeriod:
		p.Period = period
	case ParamPeriod1:
		p.Period1 = period
	case ParamPeriod2:
		p.Period2 = period
	case ParamFastPeriod:
		p.FastPeriod = period
	case ParamSlowPeriod:
		p.SlowPeriod = period
	case ParamSignalPeriod:
		p.SignalPeriod = period
	case ParamFastKPeriod:
		p.FastKPeriod = period
	case ParamSlowKPeriod:
		p.SlowKPeriod = period
	default:
		return errors.Newf(errors.ErrCodeUnknownParameter, "unknown parameter %s", key)
	}

	return nil
}

// toPeriod accepts whole positive numbers only. The compute functions
// themselves treat a non-positive period as "no output"; rejecting it here
// surfaces configuration mistakes before anything is computed.
func toPeriod(key string, value float64) (int, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a whole number, got %v", key, value)
	}

	if value <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %v", key, value)
	}

	return int(value), nil
}

// Resolve merges supplied over the descriptor defaults. Keys may be canonical
// or one of the descriptor's aliases; any other key is rejected, as is setting
// one option through two keys (e.g. both "period" and "kPeriod").
func (d Descriptor) Resolve(supplied map[string]float64) (Params, error) {
	params := d.Defaults
	set := make(map[string]bool, len(supplied))
	setBy := make(map[string]string, len(supplied))

	// sorted so that errors name the keys in a stable order
	keys := make([]string, 0, len(supplied))
	for key := range supplied {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		canonical, ok := d.canonicalKey(key)
		if !ok {
			return Params{}, errors.Newf(errors.ErrCodeUnknownParameter, "%s does not accept parameter %s", d.Type, key)
		}

		if other, dup := setBy[canonical]; dup {
			return Params{}, errors.Newf(errors.ErrCodeInvalidParameter, "%s: parameters %s and %s both set %s", d.Type, other, key, canonical)
		}

		setBy[canonical] = key

		if err := params.set(canonical, supplied[key]); err != nil {
			return Params{}, err
		}

		set[canonical] = true
	}

	if d.normalize != nil {
		d.normalize(&params, set)
	}

	return params, nil
}

func (d Descriptor) canonicalKey(key string) (string, bool) {
	for _, option := range d.Options {
		if option == key {
			return key, true
		}
	}

	if canonical, ok := d.Aliases[key]; ok {
		return canonical, true
	}

	return "", false
}
