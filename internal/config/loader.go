package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if KOLLEGA_CONFIG is set
//  3. env (prefix KOLLEGA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("KOLLEGA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: KOLLEGA_ADDR, KOLLEGA_STORE_ENGINE, ...
	// Map env keys like KOLLEGA_MAX_GUESSES -> max_guesses (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("KOLLEGA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "kollega_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxGuesses < 1:
		return fmt.Errorf("%w: max_guesses must be positive", ErrInvalidConfig)
	case c.LeaderboardLimit < 1:
		return fmt.Errorf("%w: leaderboard_limit must be positive", ErrInvalidConfig)
	case c.CatalogSource == "live" && c.DirectoryURL == "":
		return fmt.Errorf("%w: directory_url is required for the live catalog", ErrInvalidConfig)
	case c.SubmitAuthMode == "token" && c.SubmitToken == "":
		return fmt.Errorf("%w: submit_token is required for token auth", ErrInvalidConfig)
	}
	return nil
}
