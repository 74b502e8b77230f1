package indicator

import "github.com/rxtech-lab/argo-indicators/internal/types"

// Stochastic computes the stochastic oscillator. Raw %K at bar i is
//
//	(close[i] - lowestLow) / (highestHigh - lowestLow) * 100
//
// over the trailing period bars. Both K and D are EMA smoothings of raw %K,
// with fastKPeriod and slowKPeriod respectively. A flat window divides by zero
// and the resulting NaN/Inf flows through the smoothing unchanged.
func Stochastic(bars []types.Bar, period, fastKPeriod, slowKPeriod int) types.StochasticResult {
	rawK := RawStochastic(bars, period)

	return types.StochasticResult{
		K: emaOfPoints(rawK, fastKPeriod),
		D: emaOfPoints(rawK, slowKPeriod),
	}
}

// RawStochastic returns the unsmoothed %K series.
func RawStochastic(bars []types.Bar, period int) []types.Point {
	if period <= 0 || len(bars) < period {
		return emptySeries()
	}

	result := make([]types.Point, 0, len(bars)-period+1)

	for i := period - 1; i < len(bars); i++ {
		window := bars[i-period+1 : i+1]

		lowestLow := window[0].Low
		highestHigh := window[0].High

		for _, b := range window[1:] {
			lowestLow = min(lowestLow, b.Low)
			highestHigh = max(highestHigh, b.High)
		}

		k := (bars[i].Close - lowestLow) / (highestHigh - lowestLow) * 100
		result = append(result, types.Point{X: bars[i].Time, Y: k})
	}

	return result
}
