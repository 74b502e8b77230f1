package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) newClient(url string, retries int) *Client {
	client, err := NewClient(ClientConfig{BaseURL: url, Timeout: 5 * time.Second, RetryCount: retries}, logger.NewNopLogger())
	suite.Require().NoError(err)

	return client
}

func (suite *ClientTestSuite) TestNewClientInvalidConfig() {
	_, err := NewClient(ClientConfig{BaseURL: "not a url"}, nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ClientTestSuite) TestGetStockData() {
	var received StockDataRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal(http.MethodPost, r.Method)
		suite.Equal("/get_stock_data", r.URL.Path)
		suite.NoError(json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"time": "2024-01-02", "open": 10, "high": 11, "low": 9, "close": 10.5, "volume": 1000},
			{"time": "2024-01-03", "open": 10.5, "high": 12, "low": 10, "close": 11.5, "volume": 1200}
		]}`))
	}))
	defer server.Close()

	client := suite.newClient(server.URL, 0)

	bars, err := client.GetStockData(context.Background(), StockDataRequest{Symbol: "AAPL", Interval: "1d", Period: "1mo"})
	suite.Require().NoError(err)
	suite.Len(bars, 2)
	suite.Equal(11.5, bars[1].Close)

	suite.Equal("AAPL", received.Symbol)
	suite.Equal("1d", received.Interval)
	suite.Equal("1mo", received.Period)
	suite.Empty(received.StartDate)
}

func (suite *ClientTestSuite) TestGetStockDataInvalidRequest() {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := suite.newClient(server.URL, 0).GetStockData(context.Background(), StockDataRequest{Interval: "1d"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidRequest))
	suite.Equal(int32(0), calls.Load())
}

func (suite *ClientTestSuite) TestGetStockDataBackendError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "symbol not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := suite.newClient(server.URL, 0).GetStockData(context.Background(), StockDataRequest{Symbol: "NOPE", Interval: "1d"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "404")
}

func (suite *ClientTestSuite) TestGetStockDataRetriesServerErrors() {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = w.Write([]byte(`[{"time": "2024-01-02", "open": 1, "high": 1, "low": 1, "close": 1}]`))
	}))
	defer server.Close()

	bars, err := suite.newClient(server.URL, 2).GetStockData(context.Background(), StockDataRequest{Symbol: "AAPL", Interval: "1d"})
	suite.Require().NoError(err)
	suite.Len(bars, 1)
	suite.Equal(int32(2), calls.Load())
}

func (suite *ClientTestSuite) TestGetStockDataMalformedBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"time": "later"}]}`))
	}))
	defer server.Close()

	_, err := suite.newClient(server.URL, 0).GetStockData(context.Background(), StockDataRequest{Symbol: "AAPL", Interval: "1d"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed))
}

func (suite *ClientTestSuite) TestGetStockDataCancelledContext() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.newClient(server.URL, 0).GetStockData(ctx, StockDataRequest{Symbol: "AAPL", Interval: "1d"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
}
