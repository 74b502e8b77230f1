package overlay

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/stretchr/testify/suite"
)

type OverlayTestSuite struct {
	suite.Suite
}

func TestOverlaySuite(t *testing.T) {
	suite.Run(t, new(OverlayTestSuite))
}

func (suite *OverlayTestSuite) TestToChartPointsUsesUnixSeconds() {
	ts := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	points := ToChartPoints([]types.Point{{X: ts, Y: 1.5}})
	suite.Require().Len(points, 1)
	suite.Equal(ts.Unix(), points[0].Time)
	suite.Equal(1.5, points[0].Value)
}

func (suite *OverlayTestSuite) TestFilterFinite() {
	points := []ChartPoint{
		{Time: 1, Value: 1},
		{Time: 2, Value: math.NaN()},
		{Time: 3, Value: math.Inf(1)},
		{Time: 4, Value: math.Inf(-1)},
		{Time: 5, Value: 5},
	}

	filtered := FilterFinite(points)
	suite.Equal([]ChartPoint{{Time: 1, Value: 1}, {Time: 5, Value: 5}}, filtered)
	suite.Len(points, 5)
}

func (suite *OverlayTestSuite) TestOverlayFilterFiniteCopies() {
	original := Overlay{
		Indicators: []IndicatorOverlay{{
			Type:   types.IndicatorTypeRSI,
			Series: []Series{{Name: "rsi", Points: []ChartPoint{{Time: 1, Value: math.NaN()}, {Time: 2, Value: 50}}}},
		}},
	}

	filtered := original.FilterFinite()

	suite.Len(filtered.Indicators[0].Series[0].Points, 1)
	suite.Len(original.Indicators[0].Series[0].Points, 2)
}

func (suite *OverlayTestSuite) TestChartPointJSON() {
	data, err := json.Marshal([]ChartPoint{
		{Time: 10, Value: 2.5},
		{Time: 11, Value: math.NaN()},
		{Time: 12, Value: math.Inf(1), Color: ColorHistogramUp},
	})
	suite.Require().NoError(err)
	suite.JSONEq(`[
		{"time": 10, "value": 2.5},
		{"time": 11, "value": null},
		{"time": 12, "value": null, "color": "#26a69a"}
	]`, string(data))

	var decoded []ChartPoint
	suite.Require().NoError(json.Unmarshal(data, &decoded))
	suite.Equal(2.5, decoded[0].Value)
	suite.True(math.IsNaN(decoded[1].Value))
	suite.Equal(ColorHistogramUp, decoded[2].Color)
}

func (suite *OverlayTestSuite) TestLabel() {
	tests := []struct {
		descriptor indicator.Descriptor
		params     indicator.Params
		expected   string
	}{
		{descriptorOf(types.IndicatorTypeSMA), indicator.Params{Period1: 14, Period2: 28}, "SMA(14, 28)"},
		{descriptorOf(types.IndicatorTypeEMA), indicator.Params{Period: 20}, "EMA(20)"},
		{descriptorOf(types.IndicatorTypeMACD), indicator.Params{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}, "MACD(12, 26, 9)"},
		{descriptorOf(types.IndicatorTypeBollingerBands), indicator.Params{Period: 20, StdDev: 2.5}, "BB(20, 2.5)"},
		{indicator.Descriptor{Type: "vwap"}, indicator.Params{}, "VWAP"},
	}

	for _, tt := range tests {
		suite.Equal(tt.expected, Label(tt.descriptor, tt.params))
	}
}

func (suite *OverlayTestSuite) TestPaneAndColors() {
	suite.Equal(PanePrice, PaneFor(types.IndicatorTypeSMA))
	suite.Equal(PanePrice, PaneFor(types.IndicatorTypeBollingerBands))
	suite.Equal(PaneOscillator, PaneFor(types.IndicatorTypeRSI))
	suite.Equal(PaneOscillator, PaneFor(types.IndicatorTypeADX))

	suite.Equal("#2962FF", LineColor(indicator.LineSMA1, nil))
	suite.Equal("#000000", LineColor(indicator.LineSMA1, map[string]string{"sma1": "#000000"}))
	suite.Equal("", LineColor("unknown", nil))
}

func descriptorOf(t types.IndicatorType) indicator.Descriptor {
	descriptor, _ := indicator.NewDefaultRegistry().GetIndicator(t)

	return descriptor
}
