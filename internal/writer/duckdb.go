package writer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBWriter stages rows in an in-memory DuckDB table and exports them to a
// Parquet file on Finalize.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
	precision  int
	logger     *logger.Logger
}

// NewDuckDBWriter creates a new DuckDBWriter writing to outputPath.
func NewDuckDBWriter(outputPath string, precision int, log *logger.Logger) *DuckDBWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBWriter{
		outputPath: outputPath,
		precision:  precision,
		logger:     log.Named("writer"),
	}
}

// Initialize creates the staging table, begins a transaction and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS indicator_values (
			id TEXT,
			symbol TEXT,
			indicator TEXT,
			series TEXT,
			time TIMESTAMP,
			value DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO indicator_values (id, symbol, indicator, series, time, value)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		w.tx = nil
		w.db = nil

		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write inserts a single row. Non-finite values are stored as NULL.
func (w *DuckDBWriter) Write(row Row) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeWriteFailed, "writer not initialized or statement is nil")
	}

	var value sql.NullFloat64
	if d, ok := roundValue(row.Value, w.precision); ok {
		value = sql.NullFloat64{Float64: d.InexactFloat64(), Valid: true}
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		row.Symbol,
		string(row.Indicator),
		row.Series,
		row.Time.UTC(),
		value,
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to insert row", err)
	}

	return nil
}

// Finalize commits the transaction and exports the table to Parquet.
func (w *DuckDBWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "writer not initialized or transaction is nil")
	}

	if err := w.stmt.Close(); err != nil {
		w.logger.Warn("Failed to close statement", zap.Error(err))
	}

	w.stmt = nil

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	// COPY does not take bind parameters.
	path := strings.ReplaceAll(w.outputPath, "'", "''")

	_, err := w.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM indicator_values ORDER BY indicator, series, time) TO '%s' (FORMAT PARQUET)`, path))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to export to %s", w.outputPath)
	}

	w.logger.Info("Exported indicator values", zap.String("path", w.outputPath))

	return w.outputPath, nil
}

// Close releases the statement, transaction and connection.
func (w *DuckDBWriter) Close() error {
	var closeErrors []string

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close statement: %v", err))
		}

		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			w.logger.Warn("Failed to rollback transaction during close", zap.Error(err))
		}

		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Sprintf("failed to close db connection: %v", err))
		}

		w.db = nil
	}

	if len(closeErrors) > 0 {
		return errors.Newf(errors.ErrCodeWriteFailed, "errors occurred during close: %s", strings.Join(closeErrors, "; "))
	}

	return nil
}

// GetOutputPath implements SeriesWriter.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
