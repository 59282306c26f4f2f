package planner

import (
	"math"

	"github.com/crewware/roster/internal/store"
)

// Summarize derives run-level statistics from a completed match. Pure, no
// error paths: empty input yields zeroes.
func Summarize(assignments []*store.Assignment, totalShifts, totalWorkers int) store.Metrics {
	m := store.Metrics{TotalWorkersAvailable: totalWorkers}

	if totalShifts > 0 {
		m.FillRate = int(math.Round(100 * float64(len(assignments)) / float64(totalShifts)))
	}

	if len(assignments) > 0 {
		sum := 0
		for _, a := range assignments {
			sum += a.Score
		}
		m.AverageScore = int(math.Round(float64(sum) / float64(len(assignments))))
	}

	distinct := make(map[string]struct{})
	for _, a := range assignments {
		distinct[a.WorkerID] = struct{}{}
	}
	m.WorkersUtilized = len(distinct)

	return m
}
