// Package datasource reads stored bar series from parquet or CSV files through DuckDB.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Query narrows the bars a DataSource returns. Unset options are unbounded.
type Query struct {
	Symbol optional.Option[string]
	Start  optional.Option[time.Time]
	End    optional.Option[time.Time]
}

type DataSource interface {
	// Initialize points the data source at a parquet or CSV file. The file must
	// have time, open, high, low and close columns; volume and symbol are optional.
	Initialize(path string) error
	// ReadBars returns the bars matching the query ordered by time ascending.
	ReadBars(query Query) ([]types.Bar, error)
	// Symbols returns the distinct symbols in the file, sorted.
	Symbols() ([]string, error)
	// Count returns the number of bars matching the query.
	Count(query Query) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
