package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the engine tunables. Every field can be overridden from the
// environment; unset variables fall back to the envDefault values.
type Config struct {
	SpawnInterval time.Duration `env:"WORDFALL_SPAWN_INTERVAL" envDefault:"2s"`
	FrameInterval time.Duration `env:"WORDFALL_FRAME_INTERVAL" envDefault:"16666667ns"`
	ClockInterval time.Duration `env:"WORDFALL_CLOCK_INTERVAL" envDefault:"1s"`

	MaxConcurrent int `env:"WORDFALL_MAX_CONCURRENT" envDefault:"10"`

	BaseSpeed      float64 `env:"WORDFALL_BASE_SPEED"      envDefault:"2"`
	SpeedVariation float64 `env:"WORDFALL_SPEED_VARIATION" envDefault:"3"`
	RotationStep   float64 `env:"WORDFALL_ROTATION_STEP"   envDefault:"1"`

	MinWidth     float64 `env:"WORDFALL_MIN_WIDTH"     envDefault:"100"`
	MaxWidth     float64 `env:"WORDFALL_MAX_WIDTH"     envDefault:"300"`
	DefaultWidth float64 `env:"WORDFALL_DEFAULT_WIDTH" envDefault:"150"`
	ItemHeight   float64 `env:"WORDFALL_ITEM_HEIGHT"   envDefault:"40"`
	SpawnOffset  float64 `env:"WORDFALL_SPAWN_OFFSET"  envDefault:"-50"`
	EvictMargin  float64 `env:"WORDFALL_EVICT_MARGIN"  envDefault:"20"`

	// CharWidth and TextPadding drive the fallback text measurer.
	CharWidth   float64 `env:"WORDFALL_CHAR_WIDTH"   envDefault:"10"`
	TextPadding float64 `env:"WORDFALL_TEXT_PADDING" envDefault:"32"`
}

// DefaultConfig returns the envDefault values, ignoring the process environment.
func DefaultConfig() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic("engine: bad config defaults: " + err.Error())
	}
	return cfg
}

// ConfigFromEnv parses the process environment on top of the defaults.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.SpawnInterval <= 0 || c.FrameInterval <= 0 || c.ClockInterval <= 0 {
		errs = append(errs, errors.New("intervals must be positive"))
	}
	if c.MaxConcurrent <= 0 {
		errs = append(errs, fmt.Errorf("max concurrent must be positive, got %d", c.MaxConcurrent))
	}
	if c.BaseSpeed < 0 || c.SpeedVariation < 0 {
		errs = append(errs, errors.New("speeds must not be negative"))
	}
	if c.MinWidth <= 0 || c.MaxWidth < c.MinWidth {
		errs = append(errs, fmt.Errorf("width range [%v, %v] is empty", c.MinWidth, c.MaxWidth))
	}
	if c.DefaultWidth < c.MinWidth || c.DefaultWidth > c.MaxWidth {
		errs = append(errs, fmt.Errorf("default width %v outside [%v, %v]", c.DefaultWidth, c.MinWidth, c.MaxWidth))
	}
	if c.ItemHeight <= 0 {
		errs = append(errs, errors.New("item height must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// clampWidth bounds a measured width to [MinWidth, MaxWidth].
func (c Config) clampWidth(w float64) float64 {
	return min(max(w, c.MinWidth), c.MaxWidth)
}
