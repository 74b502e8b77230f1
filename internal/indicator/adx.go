package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// TrueRange returns the true range of every bar after the first:
// max(high-low, |high-prevClose|, |low-prevClose|). Index j holds bar j+1.
func TrueRange(bars []types.Bar) []float64 {
	if len(bars) < 2 {
		return []float64{}
	}

	tr := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		tr = append(tr, math.Max(
			math.Max(bars[i].High-bars[i].Low, math.Abs(bars[i].High-prevClose)),
			math.Abs(bars[i].Low-prevClose),
		))
	}

	return tr
}

// DirectionalMovement returns +DM and -DM for every bar after the first.
// Index j holds bar j+1.
func DirectionalMovement(bars []types.Bar) (plusDM, minusDM []float64) {
	if len(bars) < 2 {
		return []float64{}, []float64{}
	}

	plusDM = make([]float64, 0, len(bars)-1)
	minusDM = make([]float64, 0, len(bars)-1)

	for i := 1; i < len(bars); i++ {
		upMove := bars[i].High - bars[i-1].High
		downMove := bars[i-1].Low - bars[i].Low

		plus, minus := 0.0, 0.0
		if upMove > downMove && upMove > 0 {
			plus = upMove
		}

		if downMove > upMove && downMove > 0 {
			minus = downMove
		}

		plusDM = append(plusDM, plus)
		minusDM = append(minusDM, minus)
	}

	return plusDM, minusDM
}

// ADX computes +DI, -DI and the ADX line.
//
// True range and directional movement are Wilder-smoothed: the first smoothed
// value is the sum (not the mean) of the first period raw values, and each
// later value is smoothed - smoothed/period + raw. DI = smoothedDM /
// smoothedTR * 100.
//
// The ADX line is the single-point ratio |+DI - -DI| / (+DI + -DI) * 100 at
// each bar. Textbook ADX additionally averages that DX series over a second
// period; this one does not. Output starts at bar period and holds
// max(0, len(bars)-period) points.
func ADX(bars []types.Bar, period int) types.ADXResult {
	result := types.ADXResult{
		ADX:     emptySeries(),
		PlusDI:  emptySeries(),
		MinusDI: emptySeries(),
	}

	if period <= 0 || len(bars) <= period {
		return result
	}

	tr := TrueRange(bars)
	plusDM, minusDM := DirectionalMovement(bars)

	var smoothedTR, smoothedPlusDM, smoothedMinusDM float64
	for j := 0; j < period; j++ {
		smoothedTR += tr[j]
		smoothedPlusDM += plusDM[j]
		smoothedMinusDM += minusDM[j]
	}

	p := float64(period)

	for j := period - 1; j < len(tr); j++ {
		if j >= period {
			smoothedTR = smoothedTR - smoothedTR/p + tr[j]
			smoothedPlusDM = smoothedPlusDM - smoothedPlusDM/p + plusDM[j]
			smoothedMinusDM = smoothedMinusDM - smoothedMinusDM/p + minusDM[j]
		}

		plusDI := (smoothedPlusDM / smoothedTR) * 100
		minusDI := (smoothedMinusDM / smoothedTR) * 100
		adx := math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100

		at := bars[j+1].Time
		result.PlusDI = append(result.PlusDI, types.Point{X: at, Y: plusDI})
		result.MinusDI = append(result.MinusDI, types.Point{X: at, Y: minusDI})
		result.ADX = append(result.ADX, types.Point{X: at, Y: adx})
	}

	return result
}
