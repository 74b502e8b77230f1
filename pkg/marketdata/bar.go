package marketdata

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// barTimeLayouts are tried in order when parsing the time field of a bar.
var barTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// chartBar is one element of the backend's bar array.
type chartBar struct {
	Time   string   `json:"time"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume *float64 `json:"volume,omitempty"`
}

func (c chartBar) toBar() (types.Bar, error) {
	t, err := ParseBarTime(c.Time)
	if err != nil {
		return types.Bar{}, err
	}

	bar := types.Bar{
		Time:  t,
		Open:  c.Open,
		High:  c.High,
		Low:   c.Low,
		Close: c.Close,
	}

	if c.Volume != nil {
		bar.Volume = *c.Volume
	}

	return bar, nil
}

// ParseBarTime parses the time field the backend sends. Times without a zone
// are read as UTC.
func ParseBarTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range barTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeMarketDataParseFailed, "unrecognized bar time %q", value)
}

// DecodeBars decodes a /get_stock_data response body. The backend wraps the
// bars as {"data": [...]}; a bare array is accepted as well.
func DecodeBars(body []byte) ([]types.Bar, error) {
	trimmed := strings.TrimSpace(string(body))

	var raw []chartBar

	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode bars", err)
		}
	} else {
		var envelope struct {
			Data []chartBar `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode bars", err)
		}

		raw = envelope.Data
	}

	return toBars(raw)
}

func toBars(raw []chartBar) ([]types.Bar, error) {
	bars := make([]types.Bar, 0, len(raw))

	for i, item := range raw {
		bar, err := item.toBar()
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "bar %d", i)
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

// Bars is a bar array in the backend encoding: times in any layout
// ParseBarTime accepts and an optional volume.
type Bars []types.Bar

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bars) UnmarshalJSON(data []byte) error {
	var raw []chartBar
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode bars", err)
	}

	if raw == nil {
		*b = nil

		return nil
	}

	bars, err := toBars(raw)
	if err != nil {
		return err
	}

	*b = bars

	return nil
}
