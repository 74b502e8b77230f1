package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

var testStart = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

// barsFromCloses builds one bar per close with open = high = low = close.
func barsFromCloses(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Time:  testStart.Add(time.Duration(i) * time.Minute),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}

	return bars
}

// risingBars builds n bars whose close, high and low all climb by 1 each bar.
func risingBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = types.Bar{
			Time:  testStart.Add(time.Duration(i) * time.Minute),
			Open:  c - 0.5,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}

	return bars
}

// wavyBars builds a deterministic non-monotonic series.
func wavyBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		c := 50 + float64(i%7)*1.5 - float64(i%3)*2.25 + float64(i)*0.1
		bars[i] = types.Bar{
			Time:  testStart.Add(time.Duration(i) * time.Minute),
			Open:  c,
			High:  c + 1 + float64(i%4)*0.5,
			Low:   c - 1 - float64(i%5)*0.25,
			Close: c,
		}
	}

	return bars
}

func values(points []types.Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Y
	}

	return out
}
