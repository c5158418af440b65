package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol3d/rules"
)

const (
	// MinRate is the slowest accepted simulation rate in generations per second.
	MinRate = 0.1
	// WarnRate is the rate above which stepping may fall behind.
	WarnRate = 10.0
	// MaxRate is the fastest accepted rate; the tick interval is one millisecond.
	MaxRate = 1000.0
)

// Config holds the configuration for a simulation run
type Config struct {
	XSize          int     `json:"x_size"`
	YSize          int     `json:"y_size"`
	ZSize          int     `json:"z_size"`
	Rule           string  `json:"rule"`    // preset name or B/S notation, empty for the default
	Birth          string  `json:"birth"`   // comma separated, overrides Rule with Survive
	Survive        string  `json:"survive"` // comma separated
	Rate           float64 `json:"rate"`    // generations per second
	MaxGenerations int     `json:"max_generations"`
	RandomDensity  float64 `json:"random_density"`
	Seed           int64   `json:"seed"` // 0 uses the current time
	Pattern        string  `json:"pattern"`
	GridFile       string  `json:"grid_file"`
	OutputFile     string  `json:"output_file"`
	UseParallel    bool    `json:"use_parallel"`
	Workers        int     `json:"workers"`
	UseBoundedGrid bool    `json:"use_bounded_grid"`
	UseMemoryPool  bool    `json:"use_memory_pool"`
	StopOnCycle    bool    `json:"stop_on_cycle"`
	HistorySize    int     `json:"history_size"`
	Quiet          bool    `json:"quiet"` // only print the final summary
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		XSize:          10,
		YSize:          10,
		ZSize:          10,
		Rate:           5,
		MaxGenerations: 1000,
		RandomDensity:  0.5,
		UseParallel:    true,
		UseMemoryPool:  true,
		UseBoundedGrid: false,
		StopOnCycle:    true,
		HistorySize:    5,
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

	return config, nil
}

// Validate checks the values a run depends on. The grid dimensions are only
// checked when the starting grid is generated rather than loaded.
func (c Config) Validate() error {
	if c.Rate < MinRate || c.Rate > MaxRate {
		return errors.Errorf("[Validate] rate must be within [%v, %v], got %v", MinRate, MaxRate, c.Rate)
	}
	if c.GridFile == "" && c.Pattern == "" && (c.XSize <= 0 || c.YSize <= 0 || c.ZSize <= 0) {
		return errors.Errorf("[Validate] dimensions must be positive, got %dx%dx%d", c.XSize, c.YSize, c.ZSize)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random density must be within [0, 1], got %v", c.RandomDensity)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	}
	if _, err := c.ResolveRule(); err != nil {
		return errors.Wrap(err, "[Validate] bad rule")
	}
	return nil
}

// RateWarning reports whether the rate is high enough to cause problems.
func (c Config) RateWarning() bool {
	return c.Rate > WarnRate
}

// Interval returns the time between generations.
func (c Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.Rate)
}

// RuleGiven reports whether a rule was configured explicitly.
func (c Config) RuleGiven() bool {
	return c.Birth != "" || c.Rule != ""
}

// ResolveRule returns the rule the run uses: the custom Birth/Survive lists
// when Birth is set, otherwise the Rule preset or B/S string. With neither set
// it is the Standard preset.
func (c Config) ResolveRule() (rules.Rule, error) {
	switch {
	case c.Birth != "":
		return rules.ParseLists(c.Birth, c.Survive)
	case c.Rule == "":
		return rules.Presets[rules.Standard], nil
	}
	return rules.Resolve(c.Rule)
}
