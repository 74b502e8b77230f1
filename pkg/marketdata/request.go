package marketdata

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// StockDataRequest is the body of POST /get_stock_data. Either Period or the
// StartDate/EndDate pair selects the window; the backend decides when both are
// missing.
type StockDataRequest struct {
	Symbol    string `json:"symbol" jsonschema:"title=Symbol,description=Ticker to fetch (e.g. AAPL),required" validate:"required"`
	StartDate string `json:"start_date,omitempty" jsonschema:"title=Start Date,format=date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"title=End Date,format=date" validate:"omitempty,datetime=2006-01-02"`
	Period    string `json:"period,omitempty" jsonschema:"title=Period,description=Lookback such as 1mo or 1y"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Bar interval,required,enum=1m,enum=2m,enum=5m,enum=15m,enum=30m,enum=60m,enum=90m,enum=1h,enum=1d,enum=5d,enum=1wk,enum=1mo,enum=3mo" validate:"required,oneof=1m 2m 5m 15m 30m 60m 90m 1h 1d 5d 1wk 1mo 3mo"`
}

// Validate validates the request fields.
func (r *StockDataRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid stock data request", err)
	}

	if r.StartDate != "" && r.EndDate != "" && r.EndDate < r.StartDate {
		return errors.Newf(errors.ErrCodeInvalidRequest, "end_date %s is before start_date %s", r.EndDate, r.StartDate)
	}

	return nil
}
