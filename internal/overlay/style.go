package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Histogram bar colors.
const (
	ColorHistogramUp   = "#26a69a"
	ColorHistogramDown = "#ef5350"
)

var defaultLineColors = map[string]string{
	indicator.LineSMA1:      "#2962FF",
	indicator.LineSMA2:      "#FF6B6B",
	indicator.LineEMA:       "#2962FF",
	indicator.LineEMA1:      "#2962FF",
	indicator.LineEMA2:      "#FF6B6B",
	indicator.LineRSI:       "#2962FF",
	indicator.LineUpper:     "rgba(41, 98, 255, 0.3)",
	indicator.LineMiddle:    "#2962FF",
	indicator.LineLower:     "rgba(41, 98, 255, 0.3)",
	indicator.LineMACD:      "#2962FF",
	indicator.LineSignal:    "#FF6B6B",
	indicator.LineHistogram: ColorHistogramUp,
	indicator.LineK:         "#8E24AA",
	indicator.LineD:         "#FF6B6B",
	indicator.LineADX:       "#FF5722",
	indicator.LinePlusDI:    "#26a69a",
	indicator.LineMinusDI:   "#ef5350",
}

var shortNames = map[types.IndicatorType]string{
	types.IndicatorTypeSMA:            "SMA",
	types.IndicatorTypeEMA:            "EMA",
	types.IndicatorTypeRSI:            "RSI",
	types.IndicatorTypeBollingerBands: "BB",
	types.IndicatorTypeMACD:           "MACD",
	types.IndicatorTypeStochastic:     "Stochastic",
	types.IndicatorTypeADX:            "ADX",
}

// PaneFor returns where an indicator is drawn. Moving averages and bands share
// the price scale; everything else gets its own pane.
func PaneFor(t types.IndicatorType) Pane {
	switch t {
	case types.IndicatorTypeSMA, types.IndicatorTypeEMA, types.IndicatorTypeBollingerBands:
		return PanePrice
	default:
		return PaneOscillator
	}
}

// LineColor returns the configured color of a line, falling back to the default palette.
func LineColor(line string, colors map[string]string) string {
	if c, ok := colors[line]; ok && c != "" {
		return c
	}

	return defaultLineColors[line]
}

// Label formats the title a chart shows for an indicator, e.g. "MACD(12, 26, 9)".
// Options left at zero are skipped.
func Label(descriptor indicator.Descriptor, params indicator.Params) string {
	name, ok := shortNames[descriptor.Type]
	if !ok {
		name = strings.ToUpper(string(descriptor.Type))
	}

	values := make([]string, 0, len(descriptor.Options))

	for _, option := range descriptor.Options {
		v, ok := params.Get(option)
		if !ok || v == 0 {
			continue
		}

		values = append(values, strconv.FormatFloat(v, 'f', -1, 64))
	}

	if len(values) == 0 {
		return name
	}

	return fmt.Sprintf("%s(%s)", name, strings.Join(values, ", "))
}

func colorHistogram(points []ChartPoint) {
	for i := range points {
		if points[i].Value >= 0 {
			points[i].Color = ColorHistogramUp
		} else {
			points[i].Color = ColorHistogramDown
		}
	}
}
