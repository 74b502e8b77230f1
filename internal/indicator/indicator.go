// Package indicator computes technical indicators over OHLCV bar series.
//
// The compute functions (SMA, EMA, RSI, BollingerBands, MACD, Stochastic, ADX)
// are pure: they hold no state between calls, never return errors and return
// bit-identical output for identical input. Every output series is aligned to
// a suffix of the input; warm-up bars produce no points. Short input yields an
// empty series. Degenerate windows (zero range, zero average loss) propagate
// IEEE-754 Inf/NaN values unchanged; filtering them is the caller's job.
package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Line is one named output series of an indicator.
type Line struct {
	Name   string        `json:"name"`
	Points []types.Point `json:"points"`
}

// Output is the full result of computing one indicator.
type Output struct {
	Type   types.IndicatorType `json:"type"`
	Params Params              `json:"params"`
	Lines  []Line              `json:"lines"`
}

// Line returns the line with the given name, or nil if there is none.
func (o Output) Line(name string) []types.Point {
	for _, l := range o.Lines {
		if l.Name == name {
			return l.Points
		}
	}

	return nil
}

// ComputeFunc computes an indicator over bars with fully resolved params.
type ComputeFunc func(bars []types.Bar, params Params) Output

// Descriptor describes one indicator: its identifier, display name, default
// parameters, the options it recognizes and the function that computes it.
type Descriptor struct {
	Type      types.IndicatorType
	Name      string
	Defaults  Params
	// Options lists the canonical parameter keys the indicator recognizes.
	Options   []string
	// Aliases maps alternative parameter keys onto canonical ones.
	Aliases   map[string]string
	// Lines lists the names of the output lines, in output order.
	Lines     []string
	Compute   ComputeFunc
	// normalize runs after overrides are merged; supplied holds the canonical
	// keys the caller set.
	normalize func(p *Params, supplied map[string]bool)
}

func emptySeries() []types.Point {
	return []types.Point{}
}
