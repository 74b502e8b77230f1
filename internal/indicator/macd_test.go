package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestMACDLineIsAlignedDifference() {
	bars := wavyBars(80)
	fast, slow, signal := 12, 26, 9

	result := MACD(bars, fast, slow, signal)
	fastEMA := EMA(bars, fast)
	slowEMA := EMA(bars, slow)

	suite.Require().Len(result.MACD, len(slowEMA))

	offset := slow - fast
	for i, p := range result.MACD {
		suite.Equal(fastEMA[i+offset].Y-slowEMA[i].Y, p.Y, "index %d", i)
		suite.Equal(slowEMA[i].X, p.X)
	}
}

func (suite *MACDTestSuite) TestSignalLength() {
	bars := wavyBars(80)

	for _, signal := range []int{1, 2, 9, 20} {
		result := MACD(bars, 12, 26, signal)
		suite.Len(result.Signal, len(result.MACD)-(signal-1), "signal %d", signal)
	}
}

func (suite *MACDTestSuite) TestSignalIsEMAOfMACD() {
	bars := wavyBars(50)

	result := MACD(bars, 3, 6, 4)
	synthetic := make([]types.Bar, len(result.MACD))
	for i, p := range result.MACD {
		synthetic[i] = types.Bar{Time: p.X, Open: p.Y, High: p.Y, Low: p.Y, Close: p.Y}
	}

	suite.Equal(EMA(synthetic, 4), result.Signal)
	suite.Equal((result.MACD[0].Y+result.MACD[1].Y+result.MACD[2].Y+result.MACD[3].Y)/4, result.Signal[0].Y)
}

func (suite *MACDTestSuite) TestFastSlowerThanSlow() {
	bars := wavyBars(40)

	// swapped periods still align on the bars where both EMAs exist
	result := MACD(bars, 10, 4, 3)
	suite.Len(result.MACD, len(bars)-9)
	suite.Equal(bars[9].Time, result.MACD[0].X)
}

func (suite *MACDTestSuite) TestInsufficientData() {
	result := MACD(wavyBars(20), 12, 26, 9)
	suite.Empty(result.MACD)
	suite.Empty(result.Signal)

	result = MACD(wavyBars(30), 12, 26, 9)
	suite.Len(result.MACD, 5)
	suite.Empty(result.Signal)
}

func (suite *MACDTestSuite) TestHistogramPairsByIndex() {
	bars := wavyBars(60)

	result := MACD(bars, 12, 26, 9)
	histogram := MACDHistogram(result)

	suite.Require().Len(histogram, len(result.Signal))

	for i, p := range histogram {
		suite.Equal(result.MACD[i].Y-result.Signal[i].Y, p.Y)
		suite.Equal(result.MACD[i].X, p.X)
	}
}

func (suite *MACDTestSuite) TestHistogramEmpty() {
	suite.Empty(MACDHistogram(types.MACDResult{}))
	suite.NotNil(MACDHistogram(types.MACDResult{}))
}
