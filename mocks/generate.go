package mocks

//go:generate mockgen -destination=./mock_bar_source.go -package=mocks github.com/rxtech-lab/argo-indicators/pkg/marketdata BarSource
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-indicators/internal/datasource DataSource
//go:generate mockgen -destination=./mock_indicator_registry.go -package=mocks github.com/rxtech-lab/argo-indicators/internal/indicator IndicatorRegistry
//go:generate mockgen -destination=./mock_series_writer.go -package=mocks github.com/rxtech-lab/argo-indicators/internal/writer SeriesWriter
//go:generate mockgen -destination=./mock_publisher.go -package=mocks github.com/rxtech-lab/argo-indicators/internal/watch Publisher
