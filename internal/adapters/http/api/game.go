// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kollega-game/kollega/internal/domain/session"
)

// SessionCookie is the cookie carrying the player's session identifier.
const SessionCookie = "kollega_session"

// GameHandler handles game state and guess requests.
type GameHandler struct {
	deps Dependencies
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps Dependencies) *GameHandler {
	return &GameHandler{deps: deps}
}

// sessionID returns the caller's session ID, minting one and setting the
// cookie when absent. The cookie is HttpOnly so the ID never leaks into
// page scripts.
func (h *GameHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && strings.TrimSpace(c.Value) != "" {
		return c.Value
	}
	id := h.deps.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// HandleGetGame handles GET /api/game requests.
func (h *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_game"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Game(r.Context(), h.sessionID(w, r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// guessRequest mirrors the OpenAPI schema for POST /api/game/guess.
type guessRequest struct {
	EmployeeID string `json:"employeeId"`
}

// HandlePostGuess handles POST /api/game/guess requests.
func (h *GameHandler) HandlePostGuess(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_guess"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	view, err := h.deps.Guess(r.Context(), h.sessionID(w, r), req.EmployeeID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, session.ErrUnknownEmployee):
		writeError(w, http.StatusNotFound, "unknown_employee", err)
	case errors.Is(err, session.ErrDuplicateGuess):
		writeError(w, http.StatusConflict, "duplicate_guess", err)
	case errors.Is(err, session.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
