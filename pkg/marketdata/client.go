// Package marketdata talks to the trading backend that supplies OHLCV bars:
// the HTTP /get_stock_data endpoint and the socket channel that pushes new bars.
package marketdata

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

const stockDataPath = "/get_stock_data"

// BarSource supplies bar series. Client is the production implementation.
type BarSource interface {
	GetStockData(ctx context.Context, req StockDataRequest) ([]types.Bar, error)
}

// ClientConfig holds the configuration for the backend client.
type ClientConfig struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gte=0"`
	// RetryCount is the number of extra attempts on transport errors and 5xx responses.
	RetryCount int `validate:"gte=0"`
}

// Client fetches bars from the backend over HTTP.
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

var _ BarSource = (*Client)(nil)

// NewClient creates a backend client with the given configuration.
func NewClient(config ClientConfig, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(config.RetryCount).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= 500
		})

	if config.Timeout > 0 {
		httpClient.SetTimeout(config.Timeout)
	}

	return &Client{
		http:   httpClient,
		logger: log.Named("marketdata"),
	}, nil
}

// GetStockData posts the request to /get_stock_data and returns the decoded bars.
func (c *Client) GetStockData(ctx context.Context, req StockDataRequest) ([]types.Bar, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(stockDataPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s", req.Symbol)
	}

	if resp.IsError() {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "backend returned %d for %s: %s",
			resp.StatusCode(), req.Symbol, resp.String())
	}

	bars, err := DecodeBars(resp.Body())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fetched bars",
		zap.String("symbol", req.Symbol),
		zap.String("interval", req.Interval),
		zap.Int("bars", len(bars)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return bars, nil
}
