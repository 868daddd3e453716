// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// EmployeesHandler handles roster requests.
type EmployeesHandler struct {
	deps Dependencies
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(deps Dependencies) *EmployeesHandler {
	return &EmployeesHandler{deps: deps}
}

// HandleGetEmployees handles GET /api/employees requests.
func (h *EmployeesHandler) HandleGetEmployees(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_employees"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	employees, err := h.deps.Employees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, employees)
}
