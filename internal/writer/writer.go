// Package writer exports indicator overlays as flat rows, one per chart point.
package writer

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/shopspring/decimal"
)

// StdoutPath makes the JSON and CSV writers write to standard output.
const StdoutPath = "-"

// Row is one exported indicator value.
type Row struct {
	Symbol    string              `json:"symbol"`
	Indicator types.IndicatorType `json:"indicator"`
	Series    string              `json:"series"`
	Time      time.Time           `json:"time"`
	Value     float64             `json:"value"`
}

// SeriesWriter defines the interface for writing indicator rows to a destination.
type SeriesWriter interface {
	// Initialize opens the destination.
	Initialize() error
	// Write persists a single row.
	Write(row Row) error
	// Finalize flushes everything written so far and returns where it went.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output path.
	GetOutputPath() string
}

// NewWriter creates the writer for the configured output format.
func NewWriter(cfg config.OutputConfig, log *logger.Logger) (SeriesWriter, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	switch cfg.Format {
	case config.OutputFormatJSON:
		return NewJSONWriter(cfg.Path, cfg.Precision), nil
	case config.OutputFormatCSV:
		return NewCSVWriter(cfg.Path, cfg.Precision), nil
	case config.OutputFormatParquet:
		if cfg.Path == "" || cfg.Path == StdoutPath {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "parquet output needs a file path")
		}

		return NewDuckDBWriter(cfg.Path, cfg.Precision, log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported output format %q", cfg.Format)
	}
}

// Rows flattens an overlay in indicator, series and time order.
func Rows(ov overlay.Overlay) []Row {
	var rows []Row

	for _, ind := range ov.Indicators {
		for _, s := range ind.Series {
			for _, p := range s.Points {
				rows = append(rows, Row{
					Symbol:    ov.Symbol,
					Indicator: ind.Type,
					Series:    s.Name,
					Time:      time.Unix(p.Time, 0).UTC(),
					Value:     p.Value,
				})
			}
		}
	}

	return rows
}

// WriteOverlay writes every point of ov through w and closes it.
func WriteOverlay(w SeriesWriter, ov overlay.Overlay) (string, error) {
	defer w.Close()

	if err := w.Initialize(); err != nil {
		return "", err
	}

	for _, row := range Rows(ov) {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}

// roundValue rounds v to precision decimal places. ok is false for NaN and Inf.
func roundValue(v float64, precision int) (decimal.Decimal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Decimal{}, false
	}

	return decimal.NewFromFloat(v).Round(int32(precision)), true
}

// openOutput opens path for writing, or stdout for "" and "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == StdoutPath {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", path)
	}

	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
