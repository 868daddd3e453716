package smoke

import (
	"context"
	"fmt"

	"github.com/kollega-game/kollega/pkg/logger"
)

// Run executes the full smoke test: health check, play a game to completion
// by guessing through the roster, then submit the score and verify it shows
// up on the leaderboard.
func Run(ctx context.Context, config *Config) error {
	log := logger.Get()
	log.Info(ctx, "starting smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.String("player", config.PlayerName),
	)

	client, err := NewClient(config.BaseURL, config.Token, config.Timeout)
	if err != nil {
		return err
	}

	if err := client.Health(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	game, err := client.Game(ctx)
	if err != nil {
		return fmt.Errorf("fetch game: %w", err)
	}
	if game.Status != "in_progress" {
		return fmt.Errorf("expected a fresh game, got status %q", game.Status)
	}
	log.Info(ctx, "game fetched",
		logger.String("date", game.Date),
		logger.Int("maxGuesses", game.MaxGuesses),
	)

	roster, err := client.Employees(ctx)
	if err != nil {
		return fmt.Errorf("fetch roster: %w", err)
	}
	if len(roster) == 0 {
		return fmt.Errorf("roster is empty")
	}
	log.Info(ctx, "roster fetched", logger.Int("employees", len(roster)))

	// Walk the roster until the game ends. With a roster larger than the
	// guess cap this usually loses, which still exercises the full hint
	// path; a win additionally exercises submission.
	for _, e := range roster {
		game, err = client.Guess(ctx, e.ID)
		if err != nil {
			return fmt.Errorf("guess %s: %w", e.ID, err)
		}
		log.Info(ctx, "guessed",
			logger.String("employee", e.Name),
			logger.String("status", game.Status),
			logger.Int("guessesLeft", game.GuessesLeft),
		)
		if game.Status != "in_progress" {
			break
		}
	}

	switch game.Status {
	case "won":
		if game.Target == nil {
			return fmt.Errorf("won game did not reveal the target")
		}
		log.Info(ctx, "game won",
			logger.String("target", game.Target.Name),
			logger.Int("score", game.Score),
		)
		if err := verifySubmission(ctx, client, config, game.Score); err != nil {
			return err
		}
	case "lost":
		if game.Target == nil {
			return fmt.Errorf("lost game did not reveal the target")
		}
		log.Info(ctx, "game lost", logger.String("target", game.Target.Name))
	default:
		return fmt.Errorf("game did not finish, status %q", game.Status)
	}

	log.Info(ctx, "smoke test successful")
	return nil
}

// verifySubmission posts the score and checks the leaderboard contains the
// player at that score or better.
func verifySubmission(ctx context.Context, client *Client, config *Config, score int) error {
	if err := client.SubmitScore(ctx, config.PlayerName, score); err != nil {
		return fmt.Errorf("submit score: %w", err)
	}

	page, err := client.Leaderboard(ctx)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	for _, entry := range page.Leaderboard {
		if entry.Name == config.PlayerName && entry.Score <= score {
			logger.Get().Info(ctx, "leaderboard entry verified",
				logger.Int("rank", entry.Rank),
				logger.Int("score", entry.Score),
			)
			return nil
		}
	}
	return fmt.Errorf("player %q missing from leaderboard for %s", config.PlayerName, page.Date)
}
