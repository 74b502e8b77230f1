package marketdata

import (
	"testing"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RequestTestSuite struct {
	suite.Suite
}

func TestRequestSuite(t *testing.T) {
	suite.Run(t, new(RequestTestSuite))
}

func (suite *RequestTestSuite) TestValid() {
	requests := []StockDataRequest{
		{Symbol: "AAPL", Interval: "1d"},
		{Symbol: "AAPL", Interval: "1h", Period: "1mo"},
		{Symbol: "AAPL", Interval: "1d", StartDate: "2024-01-01", EndDate: "2024-06-30"},
	}

	for _, req := range requests {
		suite.NoError(req.Validate())
	}
}

func (suite *RequestTestSuite) TestInvalid() {
	tests := []struct {
		name     string
		req      StockDataRequest
		contains string
	}{
		{"missing symbol", StockDataRequest{Interval: "1d"}, "Symbol"},
		{"missing interval", StockDataRequest{Symbol: "AAPL"}, "Interval"},
		{"unknown interval", StockDataRequest{Symbol: "AAPL", Interval: "7s"}, "Interval"},
		{"bad start date", StockDataRequest{Symbol: "AAPL", Interval: "1d", StartDate: "01/02/2024"}, "StartDate"},
		{"reversed range", StockDataRequest{Symbol: "AAPL", Interval: "1d", StartDate: "2024-06-01", EndDate: "2024-01-01"}, "before start_date"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := tt.req.Validate()
			suite.Error(err)
			suite.Contains(err.Error(), tt.contains)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidRequest))
		})
	}
}
