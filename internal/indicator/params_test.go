package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ParamsTestSuite struct {
	suite.Suite
}

func TestParamsSuite(t *testing.T) {
	suite.Run(t, new(ParamsTestSuite))
}

func (suite *ParamsTestSuite) TestDefaults() {
	tests := []struct {
		descriptor Descriptor
		expected   Params
	}{
		{smaDescriptor(), Params{Period1: 14, Period2: 28}},
		{emaDescriptor(), Params{Period: 20}},
		{rsiDescriptor(), Params{Period: 14}},
		{bollingerBandsDescriptor(), Params{Period: 20, StdDev: 2}},
		{macdDescriptor(), Params{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}},
		{stochasticDescriptor(), Params{Period: 14, FastKPeriod: 3, SlowKPeriod: 3}},
		{adxDescriptor(), Params{Period: 14}},
	}

	for _, tt := range tests {
		suite.Run(string(tt.descriptor.Type), func() {
			params, err := tt.descriptor.Resolve(nil)
			suite.NoError(err)
			suite.Equal(tt.expected, params)
		})
	}
}

func (suite *ParamsTestSuite) TestOverridesMergeOverDefaults() {
	params, err := macdDescriptor().Resolve(map[string]float64{"fastPeriod": 5})
	suite.NoError(err)
	suite.Equal(Params{FastPeriod: 5, SlowPeriod: 26, SignalPeriod: 9}, params)

	params, err = bollingerBandsDescriptor().Resolve(map[string]float64{"stdDev": 2.5, "period": 10})
	suite.NoError(err)
	suite.Equal(Params{Period: 10, StdDev: 2.5}, params)
}

func (suite *ParamsTestSuite) TestStochasticAliases() {
	params, err := stochasticDescriptor().Resolve(map[string]float64{
		"kPeriod": 9,
		"dPeriod": 4,
		"smoothK": 5,
	})
	suite.NoError(err)
	suite.Equal(Params{Period: 9, FastKPeriod: 4, SlowKPeriod: 5}, params)
}

func (suite *ParamsTestSuite) TestAliasAndCanonicalConflict() {
	tests := []struct {
		name     string
		supplied map[string]float64
	}{
		{"period and kPeriod", map[string]float64{"period": 14, "kPeriod": 9}},
		{"same value", map[string]float64{"fastKPeriod": 3, "dPeriod": 3}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := stochasticDescriptor().Resolve(tt.supplied)
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
			suite.Contains(err.Error(), "both set")
		})
	}
}

func (suite *ParamsTestSuite) TestEMATwoLineMode() {
	params, err := emaDescriptor().Resolve(map[string]float64{"period2": 50})
	suite.NoError(err)
	suite.Equal(Params{Period: 20, Period1: 14, Period2: 50}, params)

	params, err = emaDescriptor().Resolve(map[string]float64{"period": 9})
	suite.NoError(err)
	suite.Equal(Params{Period: 9}, params)
}

func (suite *ParamsTestSuite) TestUnknownParameter() {
	_, err := rsiDescriptor().Resolve(map[string]float64{"fastPeriod": 3})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownParameter))
	suite.Contains(err.Error(), "does not accept parameter fastPeriod")
}

func (suite *ParamsTestSuite) TestInvalidPeriod() {
	tests := []struct {
		name  string
		value float64
	}{
		{"zero", 0},
		{"negative", -3},
		{"fractional", 2.5},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := rsiDescriptor().Resolve(map[string]float64{"period": tt.value})
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
		})
	}
}

func (suite *ParamsTestSuite) TestResolveDoesNotMutateDefaults() {
	descriptor := rsiDescriptor()

	_, err := descriptor.Resolve(map[string]float64{"period": 3})
	suite.NoError(err)
	suite.Equal(14, descriptor.Defaults.Period)
}

func (suite *ParamsTestSuite) TestGet() {
	params := Params{Period: 3, StdDev: 1.5}

	value, ok := params.Get(ParamPeriod)
	suite.True(ok)
	suite.Equal(3.0, value)

	value, ok = params.Get(ParamStdDev)
	suite.True(ok)
	suite.Equal(1.5, value)

	_, ok = params.Get("color")
	suite.False(ok)
}
