package writer

import (
	"encoding/json"
	"io"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

type jsonRow struct {
	Symbol    string       `json:"symbol,omitempty"`
	Indicator string       `json:"indicator"`
	Series    string       `json:"series"`
	Time      int64        `json:"time"`
	Value     *json.Number `json:"value"`
}

// JSONWriter buffers rows and writes them as one JSON array on Finalize.
type JSONWriter struct {
	outputPath string
	precision  int
	out        io.WriteCloser
	rows       []jsonRow
}

// NewJSONWriter creates a JSONWriter. An empty path or "-" writes to stdout.
func NewJSONWriter(outputPath string, precision int) *JSONWriter {
	return &JSONWriter{outputPath: outputPath, precision: precision}
}

// Initialize implements SeriesWriter.
func (w *JSONWriter) Initialize() error {
	out, err := openOutput(w.outputPath)
	if err != nil {
		return err
	}

	w.out = out
	w.rows = []jsonRow{}

	return nil
}

// Write implements SeriesWriter.
func (w *JSONWriter) Write(row Row) error {
	if w.out == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	r := jsonRow{
		Symbol:    row.Symbol,
		Indicator: string(row.Indicator),
		Series:    row.Series,
		Time:      row.Time.Unix(),
	}

	if d, ok := roundValue(row.Value, w.precision); ok {
		n := json.Number(d.String())
		r.Value = &n
	}

	w.rows = append(w.rows, r)

	return nil
}

// Finalize implements SeriesWriter.
func (w *JSONWriter) Finalize() (string, error) {
	if w.out == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized")
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(w.rows); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to encode rows", err)
	}

	w.rows = nil

	return w.GetOutputPath(), nil
}

// Close implements SeriesWriter.
func (w *JSONWriter) Close() error {
	if w.out == nil {
		return nil
	}

	err := w.out.Close()
	w.out = nil

	return err
}

// GetOutputPath implements SeriesWriter.
func (w *JSONWriter) GetOutputPath() string {
	if w.outputPath == "" {
		return StdoutPath
	}

	return w.outputPath
}
