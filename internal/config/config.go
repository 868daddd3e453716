// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers an optional YAML file and environment variables on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxGuesses caps attempts per game before it is lost.
	MaxGuesses int `koanf:"max_guesses"`

	// LeaderboardLimit caps entries returned per leaderboard page.
	LeaderboardLimit int `koanf:"leaderboard_limit"`

	// StoreEngine selects the leaderboard backend: memory or sqlite.
	StoreEngine string `koanf:"store_engine"`

	// StorePath is the sqlite database path when store_engine is sqlite.
	StorePath string `koanf:"store_path"`

	// CatalogSource selects the roster provider: mock or live.
	CatalogSource string `koanf:"catalog_source"`

	// DirectoryURL and DirectoryToken configure the live people directory.
	DirectoryURL   string `koanf:"directory_url"`
	DirectoryToken string `koanf:"directory_token"`

	// DailySalt feeds target selection so outsiders who know the roster
	// cannot precompute the answer sequence.
	DailySalt string `koanf:"daily_salt"`

	// SessionTTLHours is how long idle game sessions are kept.
	SessionTTLHours int `koanf:"session_ttl_hours"`

	// SubmitAuthMode gates leaderboard writes: open or token.
	SubmitAuthMode string `koanf:"submit_auth_mode"`

	// SubmitToken is the shared write token when submit_auth_mode is token.
	SubmitToken string `koanf:"submit_token"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		MaxGuesses:       6,
		LeaderboardLimit: 100,
		StoreEngine:      "memory",
		StorePath:        "kollega.db",
		CatalogSource:    "mock",
		DailySalt:        "kollega",
		SessionTTLHours:  48,
		SubmitAuthMode:   "open",
	}
}
