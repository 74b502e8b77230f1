package types

import "time"

// Point is one derived value at one point in time.
type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Unix returns the point time as Unix seconds, the unit charting consumers expect.
func (p Point) Unix() int64 {
	return p.X.Unix()
}

// BandResult holds the three Bollinger lines.
type BandResult struct {
	Upper  []Point `json:"upper"`
	Middle []Point `json:"middle"`
	Lower  []Point `json:"lower"`
}

// MACDResult holds the MACD line and its signal line.
type MACDResult struct {
	MACD   []Point `json:"macd"`
	Signal []Point `json:"signal"`
}

// StochasticResult holds the smoothed %K and %D lines.
type StochasticResult struct {
	K []Point `json:"k"`
	D []Point `json:"d"`
}

// ADXResult holds the ADX line together with the directional indicators it is built from.
type ADXResult struct {
	ADX     []Point `json:"adx"`
	PlusDI  []Point `json:"plus_di"`
	MinusDI []Point `json:"minus_di"`
}
