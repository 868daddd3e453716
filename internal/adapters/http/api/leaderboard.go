// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/kollega-game/kollega/internal/app"
	"github.com/kollega-game/kollega/internal/domain/types"
)

// LeaderboardHandler handles leaderboard reads and score submissions.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleLeaderboard dispatches /api/leaderboard by method.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		http.NotFound(w, r)
	}
}

// leaderboardError is the error shape of the leaderboard endpoint.
// Clients of this endpoint match on the bare error key, not the
// {code, message} envelope the rest of the API uses.
type leaderboardError struct {
	Error string `json:"error"`
}

func writeLeaderboardError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, leaderboardError{Error: msg})
}

// handleGet handles GET /api/leaderboard?date=YYYY-MM-DD requests. An
// absent date means today.
func (h *LeaderboardHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	page, err := h.deps.Leaderboard(r.Context(), r.URL.Query().Get("date"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, page)
	case errors.Is(err, service.ErrInvalidDate):
		writeLeaderboardError(w, http.StatusBadRequest, err)
	default:
		writeLeaderboardError(w, http.StatusInternalServerError, Wrap(op, err))
	}
}

// submitRequest mirrors the OpenAPI schema for POST /api/leaderboard.
type submitRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// submitResponse wraps the stored row after a merge.
type submitResponse struct {
	Success bool               `json:"success"`
	Result  types.SubmitResult `json:"result"`
}

// handlePost handles POST /api/leaderboard requests. The optional bearer
// token is passed through to the service's write gate.
func (h *LeaderboardHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_leaderboard"
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLeaderboardError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.SubmitScore(r.Context(), req.Name, req.Score, bearerToken(r))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, submitResponse{Success: true, Result: result})
	case errors.Is(err, service.ErrInvalidSubmission):
		writeLeaderboardError(w, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrWriteDenied):
		writeLeaderboardError(w, http.StatusForbidden, err)
	default:
		writeLeaderboardError(w, http.StatusInternalServerError, Wrap(op, err))
	}
}

// bearerToken extracts the credential from the Authorization header, if any.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}
