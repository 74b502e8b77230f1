package writer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

var csvHeader = []string{"symbol", "indicator", "series", "time", "value"}

// CSVWriter streams rows as CSV. Non-finite values are left empty.
type CSVWriter struct {
	outputPath string
	precision  int
	out        io.WriteCloser
	csv        *csv.Writer
}

// NewCSVWriter creates a CSVWriter. An empty path or "-" writes to stdout.
func NewCSVWriter(outputPath string, precision int) *CSVWriter {
	return &CSVWriter{outputPath: outputPath, precision: precision}
}

// Initialize implements SeriesWriter.
func (w *CSVWriter) Initialize() error {
	out, err := openOutput(w.outputPath)
	if err != nil {
		return err
	}

	w.out = out
	w.csv = csv.NewWriter(out)

	if err := w.csv.Write(csvHeader); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write csv header", err)
	}

	return nil
}

// Write implements SeriesWriter.
func (w *CSVWriter) Write(row Row) error {
	if w.csv == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	value := ""
	if d, ok := roundValue(row.Value, w.precision); ok {
		value = d.StringFixed(int32(w.precision))
	}

	record := []string{
		row.Symbol,
		string(row.Indicator),
		row.Series,
		strconv.FormatInt(row.Time.Unix(), 10),
		value,
	}

	if err := w.csv.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write csv row", err)
	}

	return nil
}

// Finalize implements SeriesWriter.
func (w *CSVWriter) Finalize() (string, error) {
	if w.csv == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	w.csv.Flush()

	if err := w.csv.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to flush csv", err)
	}

	return w.GetOutputPath(), nil
}

// Close implements SeriesWriter.
func (w *CSVWriter) Close() error {
	if w.out == nil {
		return nil
	}

	err := w.out.Close()
	w.out = nil
	w.csv = nil

	return err
}

// GetOutputPath implements SeriesWriter.
func (w *CSVWriter) GetOutputPath() string {
	if w.outputPath == "" {
		return StdoutPath
	}

	return w.outputPath
}
