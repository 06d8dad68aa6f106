package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the HTTP host settings.
type Config struct {
	Addr           string   `env:"WORDFALL_ADDR"             envDefault:":8080"`
	RateLimitRPS   int      `env:"WORDFALL_RATE_LIMIT_RPS"   envDefault:"20"`
	RateLimitBurst int      `env:"WORDFALL_RATE_LIMIT_BURST" envDefault:"40"`
	TrustedProxies []string `env:"WORDFALL_TRUSTED_PROXIES"  envDefault:"127.0.0.1"`
	Release        bool     `env:"WORDFALL_RELEASE"`
}

// ConfigFromEnv parses Config from the process environment.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse server config: %w", err)
	}
	return cfg, nil
}
