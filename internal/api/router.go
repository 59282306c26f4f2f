package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crewware/roster/internal/config"
	"github.com/crewware/roster/internal/planner"
	"github.com/crewware/roster/internal/store"
)

func NewRouter(s store.Store, p *planner.Planner, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Planner.RateLimitPerMinute))

	runs := NewRunsHandler(s, p)
	conflicts := NewConflictsHandler(p)
	analytics := NewAnalyticsHandler(p)
	score := NewScoreHandler()
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/runs", runs.Create)
		r.Get("/runs", runs.List)
		r.Get("/runs/{id}", runs.Get)
		r.Get("/assignments", runs.Assignments)

		r.Get("/conflicts", conflicts.Detect)
		r.Post("/conflicts", conflicts.Check)

		r.Get("/workload", analytics.Workload)
		r.Post("/workload", analytics.WorkloadCheck)
		r.Get("/forecast", analytics.Forecast)

		r.Post("/score", score.Score)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
