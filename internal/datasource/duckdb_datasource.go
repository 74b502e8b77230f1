package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

const viewName = "bars"

type DuckDBDataSource struct {
	db        *sql.DB
	logger    *logger.Logger
	sq        squirrel.StatementBuilderType
	hasSymbol bool
	hasVolume bool
}

// NewDataSource opens an in-memory DuckDB database. Call Initialize to load a file.
func NewDataSource(log *logger.Logger) (*DuckDBDataSource, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBDataSource{
		db:     db,
		logger: log.Named("datasource"),
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	reader, err := readerFor(path)
	if err != nil {
		return err
	}

	if _, err := d.db.Exec(fmt.Sprintf(`DROP VIEW IF EXISTS %s;`, viewName)); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Squirrel has no CREATE VIEW support.
	query := fmt.Sprintf(`CREATE VIEW %s AS SELECT * FROM %s;`, viewName, reader)
	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to read %s", path)
	}

	columns, err := d.columns()
	if err != nil {
		return err
	}

	for _, required := range []string{"time", "open", "high", "low", "close"} {
		if !columns[required] {
			return errors.Newf(errors.ErrCodeInvalidParameter, "%s has no %s column", path, required)
		}
	}

	d.hasSymbol = columns["symbol"]
	d.hasVolume = columns["volume"]

	return nil
}

func readerFor(path string) (string, error) {
	escaped := strings.ReplaceAll(path, "'", "''")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return fmt.Sprintf("read_parquet('%s')", escaped), nil
	case ".csv":
		return fmt.Sprintf("read_csv_auto('%s', header=true)", escaped), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported file type %q, expected .parquet or .csv", filepath.Ext(path))
	}
}

func (d *DuckDBDataSource) columns() (map[string]bool, error) {
	query, args, err := d.sq.
		Select("column_name").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_name": viewName}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to describe view", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan column", err)
		}

		columns[strings.ToLower(name)] = true
	}

	return columns, rows.Err()
}

func (d *DuckDBDataSource) where(builder squirrel.SelectBuilder, query Query) (squirrel.SelectBuilder, error) {
	if query.Symbol.IsSome() {
		if !d.hasSymbol {
			return builder, errors.New(errors.ErrCodeInvalidParameter, "data has no symbol column")
		}

		builder = builder.Where(squirrel.Eq{"symbol": query.Symbol.Unwrap()})
	}

	if query.Start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"CAST(time AS TIMESTAMP)": query.Start.Unwrap().UTC()})
	}

	if query.End.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"CAST(time AS TIMESTAMP)": query.End.Unwrap().UTC()})
	}

	return builder, nil
}

// ReadBars implements DataSource.
func (d *DuckDBDataSource) ReadBars(query Query) ([]types.Bar, error) {
	volume := "CAST(0 AS DOUBLE) AS volume"
	if d.hasVolume {
		volume = "CAST(volume AS DOUBLE) AS volume"
	}

	builder, err := d.where(d.sq.
		Select(
			"CAST(time AS TIMESTAMP) AS time",
			"CAST(open AS DOUBLE) AS open",
			"CAST(high AS DOUBLE) AS high",
			"CAST(low AS DOUBLE) AS low",
			"CAST(close AS DOUBLE) AS close",
			volume,
		).
		From(viewName), query)
	if err != nil {
		return nil, err
	}

	sqlQuery, args, err := builder.OrderBy("time ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	result := make([]types.Bar, 0, 256)

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
		)

		if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		result = append(result, types.Bar{
			Time:   timestamp.UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	d.logger.Debug("Read bars", zap.Int("count", len(result)))

	return result, nil
}

// Symbols implements DataSource.
func (d *DuckDBDataSource) Symbols() ([]string, error) {
	if !d.hasSymbol {
		return []string{}, nil
	}

	query, args, err := d.sq.Select("DISTINCT symbol").From(viewName).OrderBy("symbol ASC").ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query symbols", err)
	}
	defer rows.Close()

	symbols := []string{}

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	return symbols, rows.Err()
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(query Query) (int, error) {
	builder, err := d.where(d.sq.Select("COUNT(*)").From(viewName), query)
	if err != nil {
		return 0, err
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := d.db.QueryRow(sqlQuery, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}
