package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the board and its run loop
type Config struct {
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	Delay          time.Duration `json:"delay"`
	Workers        int           `json:"workers"`
	UseMemoryPool  bool          `json:"use_memory_pool"`
	MaxGenerations int           `json:"max_generations"`
	Pattern        string        `json:"pattern"`
	RandomDensity  float64       `json:"random_density"`
	Seed           int64         `json:"seed"`
	Interactive    bool          `json:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:           50,
		Cols:           50,
		Delay:          100 * time.Millisecond,
		Workers:        1,
		UseMemoryPool:  true,
		MaxGenerations: 0, // run until extinction or pause
		Pattern:        "mixed",
		RandomDensity:  0.15,
		Seed:           42,
		Interactive:    false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}

	return config, nil
}

// Validate checks that the config describes a runnable board
func (c Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Cols < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	case c.Delay < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative delay %v", c.Delay)
	case c.Workers < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must be positive, got %d", c.Workers)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max generations %d", c.MaxGenerations)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random density %v outside [0,1]", c.RandomDensity)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Rows, "rows", c.Rows, "number of grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "number of grid columns")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "pause between generations")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row bands computed concurrently per generation")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "reuse generation buffers")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "pause after this many generations (0 = no limit)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial pattern: empty, glider, blinker, random, mixed")
	fs.Float64Var(&c.RandomDensity, "density", c.RandomDensity, "alive probability for random seeding")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random seeding")
	fs.BoolVar(&c.Interactive, "interactive", c.Interactive, "edit and run the board in an interactive terminal UI")
}
