// Package smoke drives a live service through one full game and leaderboard
// round trip. It is the end-to-end check run after deploys.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// Client is an HTTP client bound to one service and one player session.
// The cookie jar carries the session cookie across calls, the same way a
// browser would.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

// gameState mirrors the /api/game response shape.
type gameState struct {
	Date        string `json:"date"`
	Status      string `json:"status"`
	MaxGuesses  int    `json:"maxGuesses"`
	GuessesLeft int    `json:"guessesLeft"`
	Score       int    `json:"score"`
	Target      *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"target"`
	Guesses []struct {
		EmployeeID string `json:"employeeId"`
		IsCorrect  bool   `json:"isCorrect"`
	} `json:"guesses"`
}

// employee mirrors the /api/employees response shape.
type employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// leaderboardPage mirrors the /api/leaderboard response shape.
type leaderboardPage struct {
	Date        string `json:"date"`
	Leaderboard []struct {
		Rank  int    `json:"rank"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	} `json:"leaderboard"`
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, http.StatusOK, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any, accept ...int) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.do(req, http.StatusOK, out, accept...)
}

func (c *Client) do(req *http.Request, want int, out any, accept ...int) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	ok := resp.StatusCode == want
	for _, code := range accept {
		ok = ok || resp.StatusCode == code
	}
	if !ok {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: unexpected status %d: %s", req.Method, req.URL.Path, resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// Health probes /health.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

// Game fetches the current session's game, minting the session on first call.
func (c *Client) Game(ctx context.Context) (gameState, error) {
	var g gameState
	err := c.get(ctx, "/api/game", &g)
	return g, err
}

// Employees lists today's roster.
func (c *Client) Employees(ctx context.Context) ([]employee, error) {
	var list []employee
	err := c.get(ctx, "/api/employees", &list)
	return list, err
}

// Guess submits one guess for the current session.
func (c *Client) Guess(ctx context.Context, employeeID string) (gameState, error) {
	var g gameState
	err := c.post(ctx, "/api/game/guess", map[string]string{"employeeId": employeeID}, &g)
	return g, err
}

// SubmitScore posts a finished score to the leaderboard.
func (c *Client) SubmitScore(ctx context.Context, name string, score int) error {
	return c.post(ctx, "/api/leaderboard", map[string]any{"name": name, "score": score}, nil)
}

// Leaderboard fetches today's leaderboard.
func (c *Client) Leaderboard(ctx context.Context) (leaderboardPage, error) {
	var page leaderboardPage
	err := c.get(ctx, "/api/leaderboard", &page)
	return page, err
}
