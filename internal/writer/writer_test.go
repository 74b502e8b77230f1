package writer_test

import (
	"database/sql"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/overlay"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/writer"
	"github.com/rxtech-lab/argo-indicators/mocks"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WriterTestSuite struct {
	suite.Suite
	tempDir string
	overlay overlay.Overlay
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func (suite *WriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.overlay = overlay.Overlay{
		Symbol: "AAPL",
		Indicators: []overlay.IndicatorOverlay{
			{
				Type: types.IndicatorTypeRSI,
				Series: []overlay.Series{{
					Name: "rsi",
					Points: []overlay.ChartPoint{
						{Time: 1704067200, Value: 55.123456},
						{Time: 1704153600, Value: math.Inf(1)},
					},
				}},
			},
			{
				Type: types.IndicatorTypeMACD,
				Series: []overlay.Series{
					{Name: "macd", Points: []overlay.ChartPoint{{Time: 1704153600, Value: -0.5}}},
					{Name: "signal", Points: []overlay.ChartPoint{{Time: 1704153600, Value: math.NaN()}}},
				},
			},
		},
	}
}

func (suite *WriterTestSuite) TestRows() {
	rows := writer.Rows(suite.overlay)
	suite.Require().Len(rows, 4)

	suite.Equal(writer.Row{
		Symbol:    "AAPL",
		Indicator: types.IndicatorTypeRSI,
		Series:    "rsi",
		Time:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Value:     55.123456,
	}, rows[0])
	suite.Equal("macd", rows[2].Series)
	suite.Equal(types.IndicatorTypeMACD, rows[3].Indicator)
}

func (suite *WriterTestSuite) TestJSONWriter() {
	path := filepath.Join(suite.tempDir, "out.json")

	out, err := writer.WriteOverlay(writer.NewJSONWriter(path, 2), suite.overlay)
	suite.Require().NoError(err)
	suite.Equal(path, out)

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.JSONEq(`[
		{"symbol": "AAPL", "indicator": "rsi", "series": "rsi", "time": 1704067200, "value": 55.12},
		{"symbol": "AAPL", "indicator": "rsi", "series": "rsi", "time": 1704153600, "value": null},
		{"symbol": "AAPL", "indicator": "macd", "series": "macd", "time": 1704153600, "value": -0.5},
		{"symbol": "AAPL", "indicator": "macd", "series": "signal", "time": 1704153600, "value": null}
	]`, string(data))
}

func (suite *WriterTestSuite) TestJSONWriterEmpty() {
	path := filepath.Join(suite.tempDir, "empty.json")

	_, err := writer.WriteOverlay(writer.NewJSONWriter(path, 4), overlay.Overlay{})
	suite.Require().NoError(err)

	var rows []map[string]any
	data, err := os.ReadFile(path)
	suite.Require().NoError(err)
	suite.Require().NoError(json.Unmarshal(data, &rows))
	suite.Empty(rows)
	suite.NotNil(rows)
}

func (suite *WriterTestSuite) TestCSVWriter() {
	path := filepath.Join(suite.tempDir, "out.csv")

	_, err := writer.WriteOverlay(writer.NewCSVWriter(path, 3), suite.overlay)
	suite.Require().NoError(err)

	data, err := os.ReadFile(path)
	suite.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	suite.Equal([]string{
		"symbol,indicator,series,time,value",
		"AAPL,rsi,rsi,1704067200,55.123",
		"AAPL,rsi,rsi,1704153600,",
		"AAPL,macd,macd,1704153600,-0.500",
		"AAPL,macd,signal,1704153600,",
	}, lines)
}

func (suite *WriterTestSuite) TestParquetWriter() {
	path := filepath.Join(suite.tempDir, "out.parquet")

	out, err := writer.WriteOverlay(writer.NewDuckDBWriter(path, 1, nil), suite.overlay)
	suite.Require().NoError(err)
	suite.Equal(path, out)

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	defer db.Close()

	var count, nulls int
	err = db.QueryRow(`SELECT COUNT(*), COUNT(*) - COUNT(value) FROM read_parquet('` + path + `')`).Scan(&count, &nulls)
	suite.Require().NoError(err)
	suite.Equal(4, count)
	suite.Equal(2, nulls)

	var value float64
	err = db.QueryRow(`SELECT value FROM read_parquet('` + path + `') WHERE indicator = 'rsi' AND value IS NOT NULL`).Scan(&value)
	suite.Require().NoError(err)
	suite.InDelta(55.1, value, 1e-9)
}

func (suite *WriterTestSuite) TestDuckDBWriterNotInitialized() {
	w := writer.NewDuckDBWriter(filepath.Join(suite.tempDir, "x.parquet"), 2, nil)

	err := w.Write(writer.Row{})
	suite.Error(err)
	suite.Equal(errors.ErrCodeWriteFailed, errors.GetCode(err))

	_, err = w.Finalize()
	suite.Error(err)
	suite.NoError(w.Close())
}

func (suite *WriterTestSuite) TestWriteOverlayStopsOnError() {
	ctrl := gomock.NewController(suite.T())
	w := mocks.NewMockSeriesWriter(ctrl)

	gomock.InOrder(
		w.EXPECT().Initialize().Return(nil),
		w.EXPECT().Write(gomock.Any()).Return(nil),
		w.EXPECT().Write(gomock.Any()).Return(errors.New(errors.ErrCodeWriteFailed, "disk full")),
	)
	w.EXPECT().Close().Return(nil)

	_, err := writer.WriteOverlay(w, suite.overlay)
	suite.Error(err)
	suite.Equal(errors.ErrCodeWriteFailed, errors.GetCode(err))
}

func (suite *WriterTestSuite) TestWriteOverlayInitializeError() {
	ctrl := gomock.NewController(suite.T())
	w := mocks.NewMockSeriesWriter(ctrl)

	w.EXPECT().Initialize().Return(errors.New(errors.ErrCodeWriteFailed, "no such directory"))
	w.EXPECT().Close().Return(nil)

	_, err := writer.WriteOverlay(w, suite.overlay)
	suite.Error(err)
}

func (suite *WriterTestSuite) TestNewWriter() {
	tests := []struct {
		name    string
		cfg     config.OutputConfig
		wantErr bool
	}{
		{"json", config.OutputConfig{Format: config.OutputFormatJSON}, false},
		{"csv", config.OutputConfig{Format: config.OutputFormatCSV, Path: "out.csv"}, false},
		{"parquet", config.OutputConfig{Format: config.OutputFormatParquet, Path: "out.parquet"}, false},
		{"parquet to stdout", config.OutputConfig{Format: config.OutputFormatParquet, Path: writer.StdoutPath}, true},
		{"unknown", config.OutputConfig{Format: "xml"}, true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w, err := writer.NewWriter(tt.cfg, nil)
			if tt.wantErr {
				suite.Error(err)
				suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))

				return
			}

			suite.Require().NoError(err)
			suite.NotEmpty(w.GetOutputPath())
		})
	}
}

func (suite *WriterTestSuite) TestCreateFailure() {
	w := writer.NewCSVWriter(filepath.Join(suite.tempDir, "missing", "out.csv"), 2)

	err := w.Initialize()
	suite.Error(err)
	suite.Equal(errors.ErrCodeWriteFailed, errors.GetCode(err))
}
