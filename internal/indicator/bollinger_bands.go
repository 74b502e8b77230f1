package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// BollingerBands computes the middle band as SMA(period) and offsets it by
// multiplier population standard deviations (divisor period, not period-1).
// The deviation is measured against the SMA value already computed for the
// window, not a separately recomputed mean, so Middle equals SMA(bars, period)
// exactly.
func BollingerBands(bars []types.Bar, period int, multiplier float64) types.BandResult {
	middle := SMA(bars, period)
	upper := make([]types.Point, 0, len(middle))
	lower := make([]types.Point, 0, len(middle))

	for i := period - 1; i < len(bars) && len(middle) > 0; i++ {
		avg := middle[i-(period-1)].Y

		var squaredDiffSum float64
		for _, d := range bars[i-period+1 : i+1] {
			diff := d.Close - avg
			squaredDiffSum += diff * diff
		}

		stdDev := math.Sqrt(squaredDiffSum / float64(period))

		upper = append(upper, types.Point{X: bars[i].Time, Y: avg + (stdDev * multiplier)})
		lower = append(lower, types.Point{X: bars[i].Time, Y: avg - (stdDev * multiplier)})
	}

	return types.BandResult{
		Upper:  upper,
		Middle: middle,
		Lower:  lower,
	}
}
