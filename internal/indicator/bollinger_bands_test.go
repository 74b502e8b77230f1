package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestConstantClosesCollapseBands() {
	bars := barsFromCloses(42, 42, 42, 42, 42, 42, 42)

	bands := BollingerBands(bars, 5, 2)
	suite.Len(bands.Middle, 3)

	for i := range bands.Middle {
		suite.Equal(bands.Middle[i].Y, bands.Upper[i].Y)
		suite.Equal(bands.Middle[i].Y, bands.Lower[i].Y)
		suite.Equal(42.0, bands.Middle[i].Y)
	}
}

func (suite *BollingerBandsTestSuite) TestMiddleIsSMA() {
	bars := wavyBars(60)

	bands := BollingerBands(bars, 20, 2)
	suite.Equal(SMA(bars, 20), bands.Middle)
	suite.Len(bands.Upper, len(bands.Middle))
	suite.Len(bands.Lower, len(bands.Middle))
}

func (suite *BollingerBandsTestSuite) TestPopulationStdDev() {
	bars := barsFromCloses(1, 2, 3, 4, 5)

	bands := BollingerBands(bars, 5, 2)
	suite.Require().Len(bands.Middle, 1)

	// variance (4+1+0+1+4)/5 = 2
	sd := math.Sqrt(2)
	suite.Equal(3.0, bands.Middle[0].Y)
	suite.InDelta(3+2*sd, bands.Upper[0].Y, 1e-12)
	suite.InDelta(3-2*sd, bands.Lower[0].Y, 1e-12)
	suite.Equal(bars[4].Time, bands.Upper[0].X)
}

func (suite *BollingerBandsTestSuite) TestMultiplier() {
	bars := wavyBars(30)

	one := BollingerBands(bars, 10, 1)
	three := BollingerBands(bars, 10, 3)

	for i := range one.Middle {
		width1 := one.Upper[i].Y - one.Middle[i].Y
		width3 := three.Upper[i].Y - three.Middle[i].Y
		suite.InDelta(3*width1, width3, 1e-9)
	}
}

func (suite *BollingerBandsTestSuite) TestInsufficientData() {
	bands := BollingerBands(barsFromCloses(1, 2, 3), 5, 2)
	suite.Empty(bands.Upper)
	suite.Empty(bands.Middle)
	suite.Empty(bands.Lower)

	bands = BollingerBands(barsFromCloses(1, 2, 3), 0, 2)
	suite.Empty(bands.Middle)
}
