package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/stretchr/testify/suite"
)

type StochasticTestSuite struct {
	suite.Suite
}

func TestStochasticSuite(t *testing.T) {
	suite.Run(t, new(StochasticTestSuite))
}

func (suite *StochasticTestSuite) bars() []types.Bar {
	hlc := [][3]float64{
		{10, 8, 9},
		{11, 9, 10},
		{12, 10, 11},
		{12, 10, 10},
		{13, 11, 13},
	}

	bars := make([]types.Bar, len(hlc))
	for i, v := range hlc {
		bars[i] = types.Bar{
			Time:  testStart.Add(time.Duration(i) * time.Hour),
			High:  v[0],
			Low:   v[1],
			Close: v[2],
		}
	}

	return bars
}

func (suite *StochasticTestSuite) TestRawK() {
	bars := suite.bars()

	raw := RawStochastic(bars, 3)
	suite.Require().Len(raw, 3)

	// lowest low 8, highest high 12
	suite.Equal(75.0, raw[0].Y)
	suite.Equal(bars[2].Time, raw[0].X)
	// lowest low 9, highest high 12
	suite.InDelta(100.0/3, raw[1].Y, 1e-12)
	// lowest low 10, highest high 13
	suite.Equal(100.0, raw[2].Y)
}

func (suite *StochasticTestSuite) TestKAndDAreEMAOfRawK() {
	bars := wavyBars(60)

	result := Stochastic(bars, 14, 3, 5)
	raw := RawStochastic(bars, 14)

	suite.Equal(emaOfPoints(raw, 3), result.K)
	suite.Equal(emaOfPoints(raw, 5), result.D)
	suite.Len(result.K, len(raw)-2)
	suite.Len(result.D, len(raw)-4)

	// the first D value seeds from the plain mean of five raw values
	suite.InDelta((raw[0].Y+raw[1].Y+raw[2].Y+raw[3].Y+raw[4].Y)/5, result.D[0].Y, 1e-9)
}

func (suite *StochasticTestSuite) TestFlatWindowPropagatesNaN() {
	bars := barsFromCloses(5, 5, 5, 5, 5, 5)

	result := Stochastic(bars, 3, 1, 2)
	suite.Require().NotEmpty(result.K)
	suite.Require().NotEmpty(result.D)

	for _, p := range result.K {
		suite.True(math.IsNaN(p.Y))
	}

	for _, p := range result.D {
		suite.True(math.IsNaN(p.Y))
	}
}

func (suite *StochasticTestSuite) TestInsufficientData() {
	result := Stochastic(barsFromCloses(1, 2), 3, 3, 3)
	suite.Empty(result.K)
	suite.Empty(result.D)

	// enough bars for raw %K but not for the smoothing
	result = Stochastic(suite.bars(), 3, 3, 4)
	suite.Len(result.K, 1)
	suite.Empty(result.D)
}
