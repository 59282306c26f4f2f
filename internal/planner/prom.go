package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	optimizeRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_optimize_runs_total",
		Help: "Optimizer runs executed.",
	})
	assignmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_assignments_created_total",
		Help: "Assignments created across all runs.",
	})
	conflictsDetectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roster_conflicts_detected_total",
		Help: "Overlap conflicts reported by conflict detection.",
	})
)
