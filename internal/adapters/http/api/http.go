// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kollega-game/kollega/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// NewSessionID mints an identifier for the session cookie.
	NewSessionID() string

	// Game and Guess drive the per-session game state.
	Game(ctx context.Context, sessionID string) (types.GameView, error)
	Guess(ctx context.Context, sessionID, employeeID string) (types.GameView, error)

	// Employees lists the guessable roster for today.
	Employees(ctx context.Context) ([]types.EmployeeView, error)

	// SubmitScore and Leaderboard expose the daily leaderboard.
	SubmitScore(ctx context.Context, name string, score int, credential string) (types.SubmitResult, error)
	Leaderboard(ctx context.Context, day string) (types.Page, error)

	// StorageHealthy probes the leaderboard store.
	StorageHealthy(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	gameHandler        *GameHandler
	employeesHandler   *EmployeesHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(deps),
		statsHandler:       NewStatsHandler(statsProvider),
		gameHandler:        NewGameHandler(deps),
		employeesHandler:   NewEmployeesHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleMetrics, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/game", CORSMiddleware(MetricsMiddleware(s.gameHandler.HandleGetGame, "game")))
	mux.HandleFunc("/api/game/guess", CORSMiddleware(MetricsMiddleware(s.gameHandler.HandlePostGuess, "guess")))
	mux.HandleFunc("/api/employees", CORSMiddleware(MetricsMiddleware(s.employeesHandler.HandleGetEmployees, "employees")))
	mux.HandleFunc("/api/leaderboard", CORSMiddleware(MetricsMiddleware(s.leaderboardHandler.HandleLeaderboard, "leaderboard")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
