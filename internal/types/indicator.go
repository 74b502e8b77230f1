package types

import "strings"

type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeStochastic     IndicatorType = "stochastic_oscillator"
	IndicatorTypeADX            IndicatorType = "adx"
)

// AllIndicatorTypes lists every indicator the engine can compute, in display order.
var AllIndicatorTypes = []IndicatorType{
	IndicatorTypeSMA,
	IndicatorTypeEMA,
	IndicatorTypeRSI,
	IndicatorTypeBollingerBands,
	IndicatorTypeMACD,
	IndicatorTypeStochastic,
	IndicatorTypeADX,
}

// dashboard keys as sent by the chart front end
var indicatorAliases = map[string]IndicatorType{
	"sma":            IndicatorTypeSMA,
	"ma":             IndicatorTypeSMA,
	"ema":            IndicatorTypeEMA,
	"rsi":            IndicatorTypeRSI,
	"bollingerbands": IndicatorTypeBollingerBands,
	"bollinger":      IndicatorTypeBollingerBands,
	"macd":           IndicatorTypeMACD,
	"stochastic":     IndicatorTypeStochastic,
	"adx":            IndicatorTypeADX,
}

// ParseIndicatorType resolves either a canonical name ("bollinger_bands") or a
// dashboard key ("BollingerBands") to an IndicatorType.
func ParseIndicatorType(name string) (IndicatorType, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, t := range AllIndicatorTypes {
		if string(t) == key {
			return t, true
		}
	}

	t, ok := indicatorAliases[strings.ReplaceAll(key, "_", "")]

	return t, ok
}
