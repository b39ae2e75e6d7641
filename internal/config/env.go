package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds runtime configuration taken from environment variables.
type Settings struct {
	ConfigPath          string `env:"ARENA_CONFIG" envDefault:"game-parameters.json"`
	DatabasePath        string `env:"ARENA_DB" envDefault:"vino-arena.db"`
	ListenAddress       string `env:"ARENA_ADDR" envDefault:":8080"`
	SessionSecret       string `env:"SESSION_SECRET"`
	SessionSecureCookie bool   `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
}

// LoadSettings parses environment variables into Settings.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parsing environment: %w", err)
	}
	if s.SessionSecret == "" {
		return Settings{}, fmt.Errorf("SESSION_SECRET must be set")
	}
	return s, nil
}
