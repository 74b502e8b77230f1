package indicator

import "github.com/rxtech-lab/argo-indicators/internal/types"

// MACD computes the MACD line as fastEMA - slowEMA on the bars where both are
// defined, and the signal line as the EMA(signalPeriod) of the MACD values.
// The signal line holds signalPeriod-1 fewer points than the MACD line.
func MACD(bars []types.Bar, fastPeriod, slowPeriod, signalPeriod int) types.MACDResult {
	fastEMA := EMA(bars, fastPeriod)
	slowEMA := EMA(bars, slowPeriod)

	if len(fastEMA) == 0 || len(slowEMA) == 0 {
		return types.MACDResult{MACD: emptySeries(), Signal: emptySeries()}
	}

	// fastEMA[0] sits at bar fastPeriod-1 and slowEMA[0] at bar slowPeriod-1.
	fastStart := fastPeriod - 1
	slowStart := slowPeriod - 1
	start := max(fastStart, slowStart)

	macdLine := make([]types.Point, 0, len(bars)-start)
	for i := start; i < len(bars); i++ {
		macdLine = append(macdLine, types.Point{
			X: bars[i].Time,
			Y: fastEMA[i-fastStart].Y - slowEMA[i-slowStart].Y,
		})
	}

	return types.MACDResult{
		MACD:   macdLine,
		Signal: emaOfPoints(macdLine, signalPeriod),
	}
}

// MACDHistogram pairs the MACD and signal lines by index and returns
// macd[i] - signal[i] stamped with the MACD point time. MACD points without a
// signal point at the same index are dropped.
func MACDHistogram(result types.MACDResult) []types.Point {
	n := min(len(result.MACD), len(result.Signal))
	histogram := make([]types.Point, 0, n)

	for i := 0; i < n; i++ {
		histogram = append(histogram, types.Point{
			X: result.MACD[i].X,
			Y: result.MACD[i].Y - result.Signal[i].Y,
		})
	}

	return histogram
}
