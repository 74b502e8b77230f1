package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// RSI computes the Relative Strength Index with a plain windowed average.
//
// With delta[j] = close[j+1] - close[j], the point at bar i (period <= i <
// len(bars)-1) averages the period deltas delta[i-period .. i-1]: avgGain is
// the sum of positive deltas divided by period, avgLoss the absolute sum of
// negative deltas divided by period. RSI = 100 - 100/(1 + avgGain/avgLoss).
//
// Gains and losses are recomputed for every window; this is not Wilder's
// smoothed RSI and the two diverge numerically. The final bar never receives
// a value, so the output holds max(0, len(bars)-1-period) points.
//
// avgLoss == 0 is not special-cased: a window with gains only yields
// avgGain/0 = +Inf and therefore RSI = 100, and a window with no movement at
// all yields 0/0 = NaN.
func RSI(bars []types.Bar, period int) []types.Point {
	if period <= 0 || len(bars) < 2 {
		return emptySeries()
	}

	changes := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		changes = append(changes, bars[i].Close-bars[i-1].Close)
	}

	if len(changes) <= period {
		return emptySeries()
	}

	result := make([]types.Point, 0, len(changes)-period)

	for i := period; i < len(changes); i++ {
		gainSum := 0.0
		lossSum := 0.0

		for _, change := range changes[i-period : i] {
			if change > 0 {
				gainSum += change
			} else if change < 0 {
				lossSum += change
			}
		}

		avgGain := gainSum / float64(period)
		avgLoss := math.Abs(lossSum) / float64(period)

		rs := avgGain / avgLoss
		rsi := 100 - (100 / (1 + rs))

		result = append(result, types.Point{X: bars[i].Time, Y: rsi})
	}

	return result
}
