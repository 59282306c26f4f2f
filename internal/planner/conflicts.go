package planner

import "github.com/crewware/roster/internal/store"

// ConflictTypeOverlap tags two committed assignments for the same worker
// whose time windows overlap.
const ConflictTypeOverlap = "overlap"

// FindConflicts reports every overlapping pair of committed assignments
// per worker. Windows are half-open [start, end): back-to-back shifts that
// touch at a boundary do not conflict.
//
// Output is grouped by worker in first-appearance order; within a worker,
// pairs follow (i, j) iteration order with i < j. Pure function, no
// mutation of the input.
func FindConflicts(assignments []store.CommittedAssignment) []store.Conflict {
	byWorker := make(map[string][]store.CommittedAssignment)
	var workerOrder []string
	for _, a := range assignments {
		if _, seen := byWorker[a.WorkerID]; !seen {
			workerOrder = append(workerOrder, a.WorkerID)
		}
		byWorker[a.WorkerID] = append(byWorker[a.WorkerID], a)
	}

	var conflicts []store.Conflict
	for _, workerID := range workerOrder {
		// Per-worker assignment counts stay small, so the quadratic pair
		// scan is fine.
		list := byWorker[workerID]
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if overlaps(list[i], list[j]) {
					conflicts = append(conflicts, store.Conflict{
						Type:     ConflictTypeOverlap,
						WorkerID: workerID,
						First:    list[i],
						Second:   list[j],
					})
				}
			}
		}
	}
	return conflicts
}

func overlaps(a, b store.CommittedAssignment) bool {
	return a.StartTime.Before(b.EndTime) && a.EndTime.After(b.StartTime)
}
