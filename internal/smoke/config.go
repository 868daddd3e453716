package smoke

import "time"

// Config controls a smoke test run against a live service.
type Config struct {
	// BaseURL of the service under test.
	BaseURL string
	// PlayerName used for the leaderboard submission.
	PlayerName string
	// Token sent as the bearer credential on submission, if the service
	// runs with a token write gate.
	Token string
	// Timeout for individual HTTP requests.
	Timeout time.Duration
}
