// Package config loads capkmeans settings from YAML, TOML or JSON files with
// environment overrides, and validates them before use.
//
// Load order, lowest priority first:
//  1. Default()
//  2. the file passed to Load (format chosen by extension)
//  3. CAPKMEANS_* environment variables
package config

import (
	"errors"

	"github.com/katalvlaran/capkmeans/kmeans"
)

// Sentinel errors.
var (
	// ErrUnknownFormat indicates a config file extension with no decoder.
	ErrUnknownFormat = errors.New("config: unknown file format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")
	// ErrBadEnv indicates an environment override that does not parse.
	ErrBadEnv = errors.New("config: bad environment value")
)

// Config is the full application configuration.
type Config struct {
	Clustering Clustering `yaml:"clustering" toml:"clustering" json:"clustering"`
	Input      Input      `yaml:"input" toml:"input" json:"input"`
	Output     Output     `yaml:"output" toml:"output" json:"output"`
	Log        Log        `yaml:"log" toml:"log" json:"log"`
	Server     Server     `yaml:"server" toml:"server" json:"server"`
	Metrics    Metrics    `yaml:"metrics" toml:"metrics" json:"metrics"`
}

// Clustering holds the parameters of a run.
type Clustering struct {
	// Clusters is k.
	Clusters int `yaml:"clusters" toml:"clusters" json:"clusters" validate:"min=1"`

	// MinPoints is the minimum size applied to every cluster when Demand is empty.
	MinPoints int `yaml:"min_points" toml:"min_points" json:"min_points" validate:"min=0"`

	// Demand lists per-cluster minimums; overrides MinPoints when set.
	Demand []int `yaml:"demand" toml:"demand" json:"demand" validate:"omitempty,dive,min=0"`

	MaxIterations int     `yaml:"max_iterations" toml:"max_iterations" json:"max_iterations" validate:"min=1"`
	Seed          int64   `yaml:"seed" toml:"seed" json:"seed"`
	Restarts      int     `yaml:"restarts" toml:"restarts" json:"restarts" validate:"min=1,max=256"`
	CostScale     float64 `yaml:"cost_scale" toml:"cost_scale" json:"cost_scale" validate:"gte=0"`
	StrictScale   bool    `yaml:"strict_scale" toml:"strict_scale" json:"strict_scale"`
	Init          string  `yaml:"init" toml:"init" json:"init" validate:"omitempty,oneof=bbox sample"`
}

// Input describes the point source of the run subcommand.
type Input struct {
	Path    string `yaml:"path" toml:"path" json:"path"`
	Format  string `yaml:"format" toml:"format" json:"format" validate:"omitempty,oneof=csv geojson"`
	XColumn string `yaml:"x_column" toml:"x_column" json:"x_column"`
	YColumn string `yaml:"y_column" toml:"y_column" json:"y_column"`
}

// Output describes where labelled records go.
type Output struct {
	Path   string `yaml:"path" toml:"path" json:"path"`
	Format string `yaml:"format" toml:"format" json:"format" validate:"omitempty,oneof=csv geojson"`
}

// Log configures the zap logger and its optional rotating file.
type Log struct {
	Level      string `yaml:"level" toml:"level" json:"level" validate:"oneof=debug info warn error"`
	File       string `yaml:"file" toml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" validate:"min=0"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" json:"max_backups" validate:"min=0"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days" json:"max_age_days" validate:"min=0"`
	Compress   bool   `yaml:"compress" toml:"compress" json:"compress"`
}

// Server configures the HTTP service.
type Server struct {
	Addr           string   `yaml:"addr" toml:"addr" json:"addr" validate:"required"`
	MaxPoints      int      `yaml:"max_points" toml:"max_points" json:"max_points" validate:"min=1"`
	RateLimit      float64  `yaml:"rate_limit" toml:"rate_limit" json:"rate_limit" validate:"gte=0"` // requests per second, 0 = off
	Burst          int      `yaml:"burst" toml:"burst" json:"burst" validate:"min=1"`
	TimeoutSeconds int      `yaml:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" validate:"min=1"`
	AllowedOrigins []string `yaml:"allowed_origins" toml:"allowed_origins" json:"allowed_origins"`
}

// Metrics configures the Prometheus textfile export of the run subcommand.
type Metrics struct {
	Textfile string `yaml:"textfile" toml:"textfile" json:"textfile"`
}

// Default returns the configuration used when no file is given: 5 clusters
// of at least 1 point, 5 iterations.
func Default() *Config {
	return &Config{
		Clustering: Clustering{
			Clusters:      5,
			MinPoints:     1,
			MaxIterations: kmeans.DefaultMaxIterations,
			Restarts:      1,
			Init:          "bbox",
		},
		Input: Input{
			XColumn: "x",
			YColumn: "y",
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Server: Server{
			Addr:           ":8080",
			MaxPoints:      50000,
			RateLimit:      5,
			Burst:          10,
			TimeoutSeconds: 60,
			AllowedOrigins: []string{"*"},
		},
	}
}

// DemandVector returns the per-cluster minimums: the explicit list when set,
// otherwise MinPoints repeated Clusters times.
func (c Clustering) DemandVector() []int {
	if len(c.Demand) > 0 {
		return append([]int(nil), c.Demand...)
	}
	return kmeans.UniformDemand(c.Clusters, c.MinPoints)
}

// KMeans converts the clustering section into a kmeans.Config.
func (c Clustering) KMeans() (kmeans.Config, error) {
	strategy, err := kmeans.ParseInit(c.Init)
	if err != nil {
		return kmeans.Config{}, err
	}

	return kmeans.Config{
		K:             c.Clusters,
		Demand:        c.DemandVector(),
		MaxIterations: c.MaxIterations,
		Seed:          c.Seed,
		CostScale:     c.CostScale,
		StrictScale:   c.StrictScale,
		Init:          strategy,
	}, nil
}
