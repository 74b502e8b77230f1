package indicator

import "github.com/rxtech-lab/argo-indicators/internal/types"

// SMA computes the simple moving average of closes. The point at bar i is the
// arithmetic mean of closes over [i-period+1, i], so the output holds
// max(0, len(bars)-period+1) points.
//
// Each window is summed independently of its neighbours.
func SMA(bars []types.Bar, period int) []types.Point {
	if period <= 0 || len(bars) < period {
		return emptySeries()
	}

	result := make([]types.Point, 0, len(bars)-period+1)

	for i := period - 1; i < len(bars); i++ {
		result = append(result, types.Point{
			X: bars[i].Time,
			Y: calculateSimpleMovingAverage(bars[i-period+1 : i+1]),
		})
	}

	return result
}

// calculateSimpleMovingAverage returns the mean close of data.
func calculateSimpleMovingAverage(data []types.Bar) float64 {
	sum := 0.0
	for _, d := range data {
		sum += d.Close
	}

	return sum / float64(len(data))
}
