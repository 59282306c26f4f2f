package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crewware/roster/internal/planner"
	"github.com/crewware/roster/internal/store"
)

type ConflictsHandler struct {
	planner  *planner.Planner
	validate *validator.Validate
}

func NewConflictsHandler(p *planner.Planner) *ConflictsHandler {
	return &ConflictsHandler{planner: p, validate: validator.New()}
}

// Detect handles GET /api/v1/conflicts — conflicts over the stored
// committed assignments, optionally scoped.
func (h *ConflictsHandler) Detect(w http.ResponseWriter, r *http.Request) {
	filter := store.AssignmentFilter{
		WorkerID: r.URL.Query().Get("worker_id"),
		Scope:    r.URL.Query().Get("scope"),
	}
	conflicts, err := h.planner.DetectConflicts(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if conflicts == nil {
		conflicts = []store.Conflict{}
	}
	writeJSON(w, http.StatusOK, conflicts)
}

type CommittedAssignmentPayload struct {
	Ref       string    `json:"ref" validate:"required"`
	WorkerID  string    `json:"worker_id" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type CheckConflictsRequest struct {
	Assignments []CommittedAssignmentPayload `json:"assignments" validate:"required,dive"`
}

// Check handles POST /api/v1/conflicts — conflict detection over a
// caller-supplied assignment list, without touching the store.
func (h *ConflictsHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	committed := make([]store.CommittedAssignment, len(req.Assignments))
	for i, a := range req.Assignments {
		committed[i] = store.CommittedAssignment{
			Ref:       a.Ref,
			WorkerID:  a.WorkerID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		}
	}

	conflicts := planner.FindConflicts(committed)
	if conflicts == nil {
		conflicts = []store.Conflict{}
	}
	writeJSON(w, http.StatusOK, conflicts)
}
