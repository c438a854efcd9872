package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"dockSched/internal/dock"
	"dockSched/internal/nsga"
)

// Prefix is prepended to every environment variable name.
const Prefix = "DOCKSCHED_"

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Seed     int64  `env:"SEED" envDefault:"1"`
	Problem  struct {
		Jobs    int      `env:"JOBS" envDefault:"20"`
		MinSize int      `env:"MIN_SIZE" envDefault:"10"`
		MaxSize int      `env:"MAX_SIZE" envDefault:"50"`
		Classes []string `env:"CLASSES" envDefault:"op1,op2,op3"`
		Seed    int64    `env:"SEED" envDefault:"777"`
	} `envPrefix:"PROBLEM_"`
	Search struct {
		Mu              int           `env:"MU" envDefault:"100"`
		Lambda          int           `env:"LAMBDA" envDefault:"100"`
		Generations     int           `env:"GENERATIONS" envDefault:"200"`
		CrossoverRate   float64       `env:"CXPB" envDefault:"0.7"`
		MutationRate    float64       `env:"MUTPB" envDefault:"0.2"`
		ParentSelection string        `env:"PARENT_SELECTION" envDefault:"random"`
		Workers         int           `env:"WORKERS" envDefault:"0"`
		ArchiveLimit    int           `env:"ARCHIVE_LIMIT" envDefault:"0"`
		TimeBudget      time.Duration `env:"TIME_BUDGET" envDefault:"0s"`
	} `envPrefix:"SEARCH_"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// Only the first error keeps the log readable
			return nil, fmt.Errorf("%w: %v", dock.ErrInvalidConfiguration, aggErr.Errors[0])
		}
		return nil, fmt.Errorf("%w: %v", dock.ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

func (c *Config) NSGA() nsga.Config {
	return nsga.Config{
		Mu:              c.Search.Mu,
		Lambda:          c.Search.Lambda,
		Generations:     c.Search.Generations,
		CrossoverRate:   c.Search.CrossoverRate,
		MutationRate:    c.Search.MutationRate,
		ParentSelection: nsga.ParentSelection(c.Search.ParentSelection),
		Workers:         c.Search.Workers,
		ArchiveLimit:    c.Search.ArchiveLimit,
		TimeBudget:      c.Search.TimeBudget,
	}
}

func (c *Config) Sizes() dock.SizeRange {
	return dock.SizeRange{Min: c.Problem.MinSize, Max: c.Problem.MaxSize}
}

func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", dock.ErrInvalidConfiguration, c.LogLevel)
	}
	return lvl, nil
}
