// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/reef-annotator-mcp/internal/annotation"
)

// Environment variables read by Load.
const (
	EnvLogLevel     = "REEF_ANNOTATOR_LOG_LEVEL"
	EnvWorkers      = "REEF_ANNOTATOR_WORKERS"
	EnvAreaFraction = "REEF_ANNOTATOR_AREA_FRACTION"
	EnvCutMinArea   = "REEF_ANNOTATOR_CUT_MIN_AREA"
	EnvMarkerRadius = "REEF_ANNOTATOR_MARKER_RADIUS"
	EnvMaxCurveFill = "REEF_ANNOTATOR_MAX_CURVE_FILL"
)

// Config holds runtime configuration.
type Config struct {
	LogLevel     slog.Level
	Workers      int
	AreaFraction float64
	CutMinArea   int
	MarkerRadius int
	MaxCurveFill float64
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	opts := annotation.DefaultOptions()
	return &Config{
		LogLevel:     slog.LevelInfo,
		Workers:      runtime.NumCPU(),
		AreaFraction: opts.AreaFraction,
		CutMinArea:   opts.CutMinArea,
		MarkerRadius: opts.MarkerRadius,
		MaxCurveFill: opts.MaxCurveFill,
	}
}

// Load reads an optional .env file from the working directory (a missing file
// is ignored), then the environment. Unparseable values keep their defaults.
// The returned Config is always usable; a non-nil error lists the settings
// Validate reset.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a variable lookup function. Like Load, it
// returns a usable Config together with any Validate error.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = ParseLevel(v)
	}
	intVar(getenv, EnvWorkers, &cfg.Workers)
	floatVar(getenv, EnvAreaFraction, &cfg.AreaFraction)
	intVar(getenv, EnvCutMinArea, &cfg.CutMinArea)
	intVar(getenv, EnvMarkerRadius, &cfg.MarkerRadius)
	floatVar(getenv, EnvMaxCurveFill, &cfg.MaxCurveFill)
	return cfg, cfg.Validate()
}

// Validate resets out-of-range values to their defaults and returns an error
// naming each setting it reset, or nil when every value was in range.
func (c *Config) Validate() error {
	d := Default()
	var errs []error
	reset := func(name string, got, def interface{}) {
		errs = append(errs, fmt.Errorf("%s %v out of range, using %v", name, got, def))
	}
	if c.Workers < 1 {
		reset("workers", c.Workers, d.Workers)
		c.Workers = d.Workers
	}
	if !(c.AreaFraction >= 0 && c.AreaFraction <= 1) {
		reset("area fraction", c.AreaFraction, d.AreaFraction)
		c.AreaFraction = d.AreaFraction
	}
	if c.CutMinArea < 1 {
		reset("cut min area", c.CutMinArea, d.CutMinArea)
		c.CutMinArea = d.CutMinArea
	}
	if c.MarkerRadius < 1 {
		reset("marker radius", c.MarkerRadius, d.MarkerRadius)
		c.MarkerRadius = d.MarkerRadius
	}
	if !(c.MaxCurveFill > 0 && c.MaxCurveFill <= 1) {
		reset("max curve fill", c.MaxCurveFill, d.MaxCurveFill)
		c.MaxCurveFill = d.MaxCurveFill
	}
	return errors.Join(errs...)
}

// Options converts the geometric settings for an annotation.Collection.
func (c *Config) Options() annotation.Options {
	return annotation.Options{
		AreaFraction: c.AreaFraction,
		CutMinArea:   c.CutMinArea,
		MarkerRadius: c.MarkerRadius,
		MaxCurveFill: c.MaxCurveFill,
		Workers:      c.Workers,
	}
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func intVar(getenv func(string) string, key string, dst *int) {
	if v, err := strconv.Atoi(strings.TrimSpace(getenv(key))); err == nil {
		*dst = v
	}
}

func floatVar(getenv func(string) string, key string, dst *float64) {
	v, err := strconv.ParseFloat(strings.TrimSpace(getenv(key)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	*dst = v
}
