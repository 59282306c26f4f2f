package planner

import (
	"sort"

	"github.com/crewware/roster/internal/store"
)

// Utilization thresholds relative to the population average.
const (
	overworkedFactor    = 1.5
	underutilizedFactor = 0.5
)

// AnalyzeWorkload aggregates hours and shift counts per worker over the
// supplied assignments and flags workers far from the population average.
// Both comparisons are strict: a worker at exactly 1.5x the average is not
// overworked. Read-only report; never writes back to worker records.
func AnalyzeWorkload(assignments []store.CommittedAssignment) store.WorkloadReport {
	totals := make(map[string]*store.WorkerLoad)
	var order []string
	for _, a := range assignments {
		load, ok := totals[a.WorkerID]
		if !ok {
			load = &store.WorkerLoad{WorkerID: a.WorkerID}
			totals[a.WorkerID] = load
			order = append(order, a.WorkerID)
		}
		load.Hours += a.EndTime.Sub(a.StartTime).Hours()
		load.Shifts++
	}

	report := store.WorkloadReport{
		Workers:       []store.WorkerLoad{},
		Overworked:    []store.WorkerLoad{},
		Underutilized: []store.WorkerLoad{},
	}

	if len(order) == 0 {
		return report
	}

	var totalHours float64
	for _, workerID := range order {
		report.Workers = append(report.Workers, *totals[workerID])
		totalHours += totals[workerID].Hours
	}
	report.AverageHours = totalHours / float64(len(order))

	// Descending by hours; stable keeps first-appearance order for ties.
	sort.SliceStable(report.Workers, func(i, j int) bool {
		return report.Workers[i].Hours > report.Workers[j].Hours
	})

	for _, load := range report.Workers {
		switch {
		case load.Hours > overworkedFactor*report.AverageHours:
			report.Overworked = append(report.Overworked, load)
		case load.Hours < underutilizedFactor*report.AverageHours:
			report.Underutilized = append(report.Underutilized, load)
		}
	}

	return report
}
