package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SMATestSuite struct {
	suite.Suite
}

func TestSMASuite(t *testing.T) {
	suite.Run(t, new(SMATestSuite))
}

func (suite *SMATestSuite) TestFlatSeries() {
	bars := barsFromCloses(100, 100, 100, 100, 100)

	result := SMA(bars, 3)
	suite.Len(result, 3)

	for _, p := range result {
		suite.Equal(100.0, p.Y)
	}
}

func (suite *SMATestSuite) TestKnownValues() {
	bars := barsFromCloses(10, 11, 12, 13, 14, 15)

	result := SMA(bars, 3)
	suite.Equal([]float64{11, 12, 13, 14}, values(result))

	// aligned to the last bar of each window
	suite.Equal(bars[2].Time, result[0].X)
	suite.Equal(bars[5].Time, result[3].X)
}

func (suite *SMATestSuite) TestOutputLength() {
	bars := wavyBars(30)

	for period := 1; period <= 35; period++ {
		expected := max(0, len(bars)-period+1)
		suite.Len(SMA(bars, period), expected, "period %d", period)
	}
}

func (suite *SMATestSuite) TestInsufficientData() {
	result := SMA(barsFromCloses(1, 2), 3)
	suite.NotNil(result)
	suite.Empty(result)

	suite.Empty(SMA(nil, 3))
}

func (suite *SMATestSuite) TestNonPositivePeriod() {
	bars := barsFromCloses(1, 2, 3)
	suite.Empty(SMA(bars, 0))
	suite.Empty(SMA(bars, -2))
}

func (suite *SMATestSuite) TestPeriodOneIsCloses() {
	bars := barsFromCloses(3, 1, 4, 1, 5)
	suite.Equal([]float64{3, 1, 4, 1, 5}, values(SMA(bars, 1)))
}
