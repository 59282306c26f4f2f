package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/crewware/roster/internal/planner"
	"github.com/crewware/roster/internal/store"
)

type RunsHandler struct {
	store   store.Store
	planner *planner.Planner
}

func NewRunsHandler(s store.Store, p *planner.Planner) *RunsHandler {
	return &RunsHandler{store: s, planner: p}
}

type CreateRunRequest struct {
	Scope string `json:"scope,omitempty"`
}

// Create handles POST /api/v1/runs — one optimizer run for a scope.
func (h *RunsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	result, err := h.planner.RunOptimize(r.Context(), req.Scope)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result.Assignments == nil {
		result.Assignments = []*store.Assignment{}
	}
	writeJSON(w, http.StatusCreated, result)
}

// Get handles GET /api/v1/runs/{id}
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid run id"})
		return
	}

	run, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// List handles GET /api/v1/runs
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.ListRuns(r.Context(), intQuery(r, "limit"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// Assignments handles GET /api/v1/assignments
func (h *RunsHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	filter := store.AssignmentFilter{
		WorkerID: r.URL.Query().Get("worker_id"),
		Limit:    intQuery(r, "limit"),
	}
	assignments, err := h.store.ListAssignments(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if assignments == nil {
		assignments = []*store.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}
