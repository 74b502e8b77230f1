package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Output line names.
const (
	LineSMA1      = "sma1"
	LineSMA2      = "sma2"
	LineEMA       = "ema"
	LineEMA1      = "ema1"
	LineEMA2      = "ema2"
	LineRSI       = "rsi"
	LineUpper     = "upper"
	LineMiddle    = "middle"
	LineLower     = "lower"
	LineMACD      = "macd"
	LineSignal    = "signal"
	LineHistogram = "histogram"
	LineK         = "k"
	LineD         = "d"
	LineADX       = "adx"
	LinePlusDI    = "plus_di"
	LineMinusDI   = "minus_di"
)

// Default periods of the dashboard's dual EMA overlay.
const (
	defaultEMAPeriod1 = 14
	defaultEMAPeriod2 = 28
)

// Builtins returns the descriptors of every indicator the engine implements,
// in display order.
func Builtins() []Descriptor {
	return []Descriptor{
		smaDescriptor(),
		emaDescriptor(),
		rsiDescriptor(),
		bollingerBandsDescriptor(),
		macdDescriptor(),
		stochasticDescriptor(),
		adxDescriptor(),
	}
}

func smaDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeSMA,
		Name:     "Simple Moving Average",
		Defaults: Params{Period1: 14, Period2: 28},
		Options:  []string{ParamPeriod1, ParamPeriod2},
		Lines:    []string{LineSMA1, LineSMA2},
		Compute: func(bars []types.Bar, p Params) Output {
			return Output{
				Type:   types.IndicatorTypeSMA,
				Params: p,
				Lines: []Line{
					{Name: LineSMA1, Points: SMA(bars, p.Period1)},
					{Name: LineSMA2, Points: SMA(bars, p.Period2)},
				},
			}
		},
	}
}

// EMA draws a single line by default. Supplying period1 or period2 switches to
// the dashboard's two-line overlay, with the missing period defaulted.
func emaDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeEMA,
		Name:     "Exponential Moving Average",
		Defaults: Params{Period: 20},
		Options:  []string{ParamPeriod, ParamPeriod1, ParamPeriod2},
		Lines:    []string{LineEMA},
		Compute: func(bars []types.Bar, p Params) Output {
			out := Output{Type: types.IndicatorTypeEMA, Params: p}
			if p.Period1 > 0 && p.Period2 > 0 {
				out.Lines = []Line{
					{Name: LineEMA1, Points: EMA(bars, p.Period1)},
					{Name: LineEMA2, Points: EMA(bars, p.Period2)},
				}

				return out
			}

			out.Lines = []Line{{Name: LineEMA, Points: EMA(bars, p.Period)}}

			return out
		},
		normalize: func(p *Params, supplied map[string]bool) {
			if !supplied[ParamPeriod1] && !supplied[ParamPeriod2] {
				return
			}

			if p.Period1 == 0 {
				p.Period1 = defaultEMAPeriod1
			}

			if p.Period2 == 0 {
				p.Period2 = defaultEMAPeriod2
			}
		},
	}
}

func rsiDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeRSI,
		Name:     "Relative Strength Index",
		Defaults: Params{Period: 14},
		Options:  []string{ParamPeriod},
		Lines:    []string{LineRSI},
		Compute: func(bars []types.Bar, p Params) Output {
			return Output{
				Type:   types.IndicatorTypeRSI,
				Params: p,
				Lines:  []Line{{Name: LineRSI, Points: RSI(bars, p.Period)}},
			}
		},
	}
}

func bollingerBandsDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeBollingerBands,
		Name:     "Bollinger Bands",
		Defaults: Params{Period: 20, StdDev: 2},
		Options:  []string{ParamPeriod, ParamStdDev},
		Lines:    []string{LineUpper, LineMiddle, LineLower},
		Compute: func(bars []types.Bar, p Params) Output {
			bands := BollingerBands(bars, p.Period, p.StdDev)

			return Output{
				Type:   types.IndicatorTypeBollingerBands,
				Params: p,
				Lines: []Line{
					{Name: LineUpper, Points: bands.Upper},
					{Name: LineMiddle, Points: bands.Middle},
					{Name: LineLower, Points: bands.Lower},
				},
			}
		},
	}
}

func macdDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeMACD,
		Name:     "Moving Average Convergence Divergence",
		Defaults: Params{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9},
		Options:  []string{ParamFastPeriod, ParamSlowPeriod, ParamSignalPeriod},
		Lines:    []string{LineMACD, LineSignal, LineHistogram},
		Compute: func(bars []types.Bar, p Params) Output {
			macd := MACD(bars, p.FastPeriod, p.SlowPeriod, p.SignalPeriod)

			return Output{
				Type:   types.IndicatorTypeMACD,
				Params: p,
				Lines: []Line{
					{Name: LineMACD, Points: macd.MACD},
					{Name: LineSignal, Points: macd.Signal},
					{Name: LineHistogram, Points: MACDHistogram(macd)},
				},
			}
		},
	}
}

func stochasticDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeStochastic,
		Name:     "Stochastic Oscillator",
		Defaults: Params{Period: 14, FastKPeriod: 3, SlowKPeriod: 3},
		Options:  []string{ParamPeriod, ParamFastKPeriod, ParamSlowKPeriod},
		// dashboard names
		Aliases: map[string]string{
			"kPeriod": ParamPeriod,
			"dPeriod": ParamFastKPeriod,
			"smoothK": ParamSlowKPeriod,
		},
		Lines: []string{LineK, LineD},
		Compute: func(bars []types.Bar, p Params) Output {
			stoch := Stochastic(bars, p.Period, p.FastKPeriod, p.SlowKPeriod)

			return Output{
				Type:   types.IndicatorTypeStochastic,
				Params: p,
				Lines: []Line{
					{Name: LineK, Points: stoch.K},
					{Name: LineD, Points: stoch.D},
				},
			}
		},
	}
}

func adxDescriptor() Descriptor {
	return Descriptor{
		Type:     types.IndicatorTypeADX,
		Name:     "Average Directional Index",
		Defaults: Params{Period: 14},
		Options:  []string{ParamPeriod},
		Lines:    []string{LineADX, LinePlusDI, LineMinusDI},
		Compute: func(bars []types.Bar, p Params) Output {
			adx := ADX(bars, p.Period)

			return Output{
				Type:   types.IndicatorTypeADX,
				Params: p,
				Lines: []Line{
					{Name: LineADX, Points: adx.ADX},
					{Name: LinePlusDI, Points: adx.PlusDI},
					{Name: LineMinusDI, Points: adx.MinusDI},
				},
			}
		},
	}
}
