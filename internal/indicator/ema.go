package indicator

import "github.com/rxtech-lab/argo-indicators/internal/types"

// EMA computes the exponential moving average of closes.
//
// The value at bar period-1 is seeded with the SMA of the first period closes.
// After that each value is
//
//	ema[i] = (close[i] - ema[i-1]) * k + ema[i-1],  k = 2 / (period + 1)
//
// Every step depends on the previous one, so the series is computed strictly
// in order.
func EMA(bars []types.Bar, period int) []types.Point {
	if period <= 0 || len(bars) < period {
		return emptySeries()
	}

	k := 2.0 / float64(period+1)
	result := make([]types.Point, 0, len(bars)-period+1)

	ema := calculateSimpleMovingAverage(bars[:period])
	result = append(result, types.Point{X: bars[period-1].Time, Y: ema})

	for i := period; i < len(bars); i++ {
		ema = (bars[i].Close-ema)*k + ema
		result = append(result, types.Point{X: bars[i].Time, Y: ema})
	}

	return result
}

// emaOfPoints runs EMA over a derived series by treating every point as a bar
// whose open, high, low and close all equal the point value.
func emaOfPoints(points []types.Point, period int) []types.Point {
	return EMA(pointsToBars(points), period)
}

func pointsToBars(points []types.Point) []types.Bar {
	bars := make([]types.Bar, len(points))
	for i, p := range points {
		bars[i] = types.Bar{Time: p.X, Open: p.Y, High: p.Y, Low: p.Y, Close: p.Y}
	}

	return bars
}
