// Package config loads the YAML configuration shared by the CLI commands.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values read from the file.
const (
	EnvBackendURL = "ARGO_BACKEND_URL"
	EnvSocketURL  = "ARGO_SOCKET_URL"
	EnvServerAddr = "ARGO_SERVER_ADDR"
	EnvLogLevel   = "ARGO_LOG_LEVEL"
)

// OutputFormat selects the SeriesWriter used by the compute command.
type OutputFormat string

const (
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatCSV     OutputFormat = "csv"
	OutputFormatParquet OutputFormat = "parquet"
)

type Config struct {
	Version    string            `yaml:"version" validate:"required"`
	Log        LogConfig         `yaml:"log"`
	Backend    BackendConfig     `yaml:"backend"`
	Server     ServerConfig      `yaml:"server"`
	Watch      WatchConfig       `yaml:"watch"`
	Indicators []IndicatorConfig `yaml:"indicators" validate:"dive"`
	Output     OutputConfig      `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type BackendConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	SocketURL string        `yaml:"socket_url" validate:"omitempty,url"`
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// WatchConfig describes the bar series the watcher keeps refreshed.
type WatchConfig struct {
	Symbol   string `yaml:"symbol"`
	Interval string `yaml:"interval"`
	Period   string `yaml:"period"`
	Cron     string `yaml:"cron"`
	// MaxBars caps the window kept while following the socket; 0 keeps everything.
	MaxBars  int    `yaml:"max_bars" validate:"gte=0"`
}

// IndicatorConfig is one indicator enabled on the chart. Params uses the
// option names accepted by the indicator registry; missing options fall back
// to the indicator defaults.
type IndicatorConfig struct {
	Name   string             `yaml:"name" json:"name" validate:"required"`
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
	Colors map[string]string  `yaml:"colors,omitempty" json:"colors,omitempty"`
}

type OutputConfig struct {
	Format    OutputFormat `yaml:"format" validate:"oneof=json csv parquet"`
	Path      string       `yaml:"path"`
	Precision int          `yaml:"precision" validate:"gte=0,lte=16"`
}

// Default returns a configuration that works against a backend on localhost
// with the indicators the dashboard enables out of the box.
func Default() *Config {
	return &Config{
		Version: version.ConfigVersion,
		Log:     LogConfig{Level: "info"},
		Backend: BackendConfig{
			BaseURL: "http://localhost:5001",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{Addr: ":8080"},
		Watch: WatchConfig{
			Interval: "1d",
			Period:   "1y",
			Cron:     "0 */1 * * * *",
		},
		Indicators: []IndicatorConfig{
			{Name: string(types.IndicatorTypeSMA)},
			{Name: string(types.IndicatorTypeRSI)},
		},
		Output: OutputConfig{
			Format:    OutputFormatJSON,
			Precision: 4,
		},
	}
}

// Load reads config from a YAML file on top of Default, then applies
// environment variable overrides and validates the result. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "read config", err)
		}

		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "parse config", err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.Backend.BaseURL = v
	}

	if v := os.Getenv(EnvSocketURL); v != "" {
		c.Backend.SocketURL = v
	}

	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Validate checks struct constraints, the config version and the indicator names.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckConfigVersion(c.Version); err != nil {
		return err
	}

	for _, ind := range c.Indicators {
		if _, ok := types.ParseIndicatorType(ind.Name); !ok {
			return errors.Newf(errors.ErrCodeIndicatorNotFound, "unknown indicator %q in config", ind.Name)
		}
	}

	return nil
}

// Marshal encodes the configuration back to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
