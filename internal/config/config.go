// Package config loads and validates the valvenet YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/valvenet/loader"
	"github.com/katalvlaran/valvenet/search"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the top-level configuration file.
type Config struct {
	Input     string     `yaml:"input"`
	Start     string     `yaml:"start" validate:"required,alpha"`
	Scenarios []Scenario `yaml:"scenarios" validate:"required,min=1,dive"`
	Search    Search     `yaml:"search"`
	Store     Store      `yaml:"store"`
	Server    Server     `yaml:"server"`
	Log       Log        `yaml:"log"`
}

// Scenario is one solve: how many agents and how many turns.
type Scenario struct {
	Name   string `yaml:"name" validate:"required"`
	Agents int    `yaml:"agents" validate:"min=1,max=2"`
	Budget int    `yaml:"budget" validate:"gte=0"`
}

// Search tunes the engines.
type Search struct {
	Bound   string        `yaml:"bound" validate:"omitempty,oneof=rate none"`
	Workers int           `yaml:"workers" validate:"gte=0,lte=256"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Store configures run history. An empty Path disables it.
type Store struct {
	Path string `yaml:"path"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration: the two classic scenarios
// from the conventional start valve.
func Default() Config {
	return Config{
		Start: loader.DefaultStart,
		Scenarios: []Scenario{
			{Name: "solo", Agents: 1, Budget: 30},
			{Name: "pair", Agents: 2, Budget: 26},
		},
		Search: Search{Bound: "rate", Workers: 1},
		Server: Server{Addr: "127.0.0.1:8080"},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks struct constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SearchOptions converts the search section into engine options.
func (c Config) SearchOptions() (search.Options, error) {
	bound, err := search.ParseBound(c.Search.Bound)
	if err != nil {
		return search.Options{}, err
	}
	return search.Options{
		Bound:     bound,
		Workers:   c.Search.Workers,
		TimeLimit: c.Search.Timeout,
	}, nil
}

// Logger builds the slog logger described by the log section.
func (c Config) Logger() *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Log.Level))
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
