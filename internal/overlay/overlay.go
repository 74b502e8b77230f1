// Package overlay turns indicator outputs into chart-ready series: points keyed
// by unix seconds, one series per output line, with colors and pane placement.
package overlay

import (
	"encoding/json"
	"math"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Pane says where a chart draws an indicator.
type Pane string

const (
	// PanePrice draws on top of the candles.
	PanePrice Pane = "price"
	// PaneOscillator draws in a separate pane below the candles.
	PaneOscillator Pane = "oscillator"
)

// ChartPoint is one indicator value in chart form.
type ChartPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// MarshalJSON writes non-finite values as null.
func (p ChartPoint) MarshalJSON() ([]byte, error) {
	type wire struct {
		Time  int64    `json:"time"`
		Value *float64 `json:"value"`
		Color string   `json:"color,omitempty"`
	}

	out := wire{Time: p.Time, Color: p.Color}
	if IsFinite(p.Value) {
		value := p.Value
		out.Value = &value
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads null values back as NaN.
func (p *ChartPoint) UnmarshalJSON(data []byte) error {
	var in struct {
		Time  int64    `json:"time"`
		Value *float64 `json:"value"`
		Color string   `json:"color,omitempty"`
	}

	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	p.Time = in.Time
	p.Color = in.Color
	p.Value = math.NaN()

	if in.Value != nil {
		p.Value = *in.Value
	}

	return nil
}

// Series is one drawn line.
type Series struct {
	Name   string       `json:"name"`
	Color  string       `json:"color,omitempty"`
	Points []ChartPoint `json:"points"`
}

// IndicatorOverlay is everything a chart needs to draw one indicator.
type IndicatorOverlay struct {
	Type   types.IndicatorType `json:"type"`
	Name   string              `json:"name"`
	Label  string              `json:"label"`
	Pane   Pane                `json:"pane"`
	Params indicator.Params    `json:"params"`
	Series []Series            `json:"series"`
}

// SeriesByName returns the series with the given line name.
func (o IndicatorOverlay) SeriesByName(name string) (Series, bool) {
	for _, s := range o.Series {
		if s.Name == name {
			return s, true
		}
	}

	return Series{}, false
}

// Overlay is the result of computing every configured indicator over one bar series.
type Overlay struct {
	Symbol      string             `json:"symbol,omitempty"`
	Interval    string             `json:"interval,omitempty"`
	Bars        int                `json:"bars"`
	GeneratedAt time.Time          `json:"generated_at"`
	Indicators  []IndicatorOverlay `json:"indicators"`
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FilterFinite returns the points whose value is finite. The input is not modified.
func FilterFinite(points []ChartPoint) []ChartPoint {
	out := make([]ChartPoint, 0, len(points))

	for _, p := range points {
		if IsFinite(p.Value) {
			out = append(out, p)
		}
	}

	return out
}

// FilterFinite returns a copy of the overlay with non-finite points removed
// from every series.
func (o Overlay) FilterFinite() Overlay {
	filtered := o
	filtered.Indicators = make([]IndicatorOverlay, len(o.Indicators))

	for i, ind := range o.Indicators {
		copied := ind
		copied.Series = make([]Series, len(ind.Series))

		for j, s := range ind.Series {
			copied.Series[j] = Series{Name: s.Name, Color: s.Color, Points: FilterFinite(s.Points)}
		}

		filtered.Indicators[i] = copied
	}

	return filtered
}

// ToChartPoints converts engine points to chart points.
func ToChartPoints(points []types.Point) []ChartPoint {
	out := make([]ChartPoint, len(points))

	for i, p := range points {
		out[i] = ChartPoint{Time: p.Unix(), Value: p.Y}
	}

	return out
}
