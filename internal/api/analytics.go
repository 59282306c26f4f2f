package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/crewware/roster/internal/planner"
	"github.com/crewware/roster/internal/store"
)

type AnalyticsHandler struct {
	planner  *planner.Planner
	validate *validator.Validate
}

func NewAnalyticsHandler(p *planner.Planner) *AnalyticsHandler {
	return &AnalyticsHandler{planner: p, validate: validator.New()}
}

// Workload handles GET /api/v1/workload over the stored committed
// assignments in the reporting window.
func (h *AnalyticsHandler) Workload(w http.ResponseWriter, r *http.Request) {
	filter := store.AssignmentFilter{
		WorkerID: r.URL.Query().Get("worker_id"),
		Scope:    r.URL.Query().Get("scope"),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid from timestamp"})
			return
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid to timestamp"})
			return
		}
		filter.To = &t
	}

	report, err := h.planner.AnalyzeStoredWorkload(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// WorkloadCheck handles POST /api/v1/workload over a caller-supplied
// assignment list.
func (h *AnalyticsHandler) WorkloadCheck(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, planner.AnalyzeWorkload(committed))
}

// Forecast handles GET /api/v1/forecast?weeks=N
func (h *AnalyticsHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	weeks := intQuery(r, "weeks")
	forecast, err := h.planner.ForecastDemand(r.Context(), weeks)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if forecast == nil {
		forecast = []store.WeeklyForecast{}
	}
	writeJSON(w, http.StatusOK, forecast)
}

func intQuery(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
