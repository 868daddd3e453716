package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/kollega-game/kollega/internal/smoke"
	"github.com/kollega-game/kollega/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 2 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the service")
		player  = flag.String("player", "smoke-test", "Player name used for the leaderboard submission")
		token   = flag.String("token", "", "Bearer token for the leaderboard write gate, if enabled")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL:    *baseURL,
		PlayerName: *player,
		Token:      *token,
		Timeout:    *timeout,
	}

	if err := smoke.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "smoke test failed", logger.Error(err))
		os.Exit(1)
	}
}
