package planner

import (
	"sort"

	"github.com/google/uuid"

	"github.com/crewware/roster/internal/scoring"
	"github.com/crewware/roster/internal/store"
)

// Match greedily pairs shifts with workers, one worker per shift and one
// shift per worker. Shifts are taken in start-time order; each takes the
// best-scoring remaining worker. The result is deterministic for a fixed
// input order but not globally optimal: an early shift may claim a worker
// a later shift would have scored higher. That is a property of the
// heuristic, not a defect.
//
// Infeasibility is not an error — a shift with no positive-scoring
// candidate is simply left out of the result.
func Match(shifts []*store.Shift, workers []*store.Worker, scorer *scoring.Scorer) []*store.Assignment {
	ordered := make([]*store.Shift, len(shifts))
	copy(ordered, shifts)
	// Stable sort keeps input order as the tie-break for identical starts.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	assignedWorkers := make(map[string]bool)
	assignedShifts := make(map[string]bool)

	type candidate struct {
		worker  *store.Worker
		score   int
		reasons []string
	}

	var assignments []*store.Assignment
	for _, shift := range ordered {
		if assignedShifts[shift.ID] {
			continue
		}

		var candidates []candidate
		for _, w := range workers {
			if assignedWorkers[w.ID] {
				continue
			}
			score, reasons := scorer.Score(w, shift)
			if score <= 0 {
				continue
			}
			candidates = append(candidates, candidate{worker: w, score: score, reasons: reasons})
		}
		if len(candidates) == 0 {
			continue
		}

		// Ties go to the worker seen first in the input.
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		best := candidates[0]

		assignments = append(assignments, &store.Assignment{
			ID:       uuid.New(),
			ShiftID:  shift.ID,
			WorkerID: best.worker.ID,
			Score:    best.score,
			Reasons:  best.reasons,
		})
		assignedWorkers[best.worker.ID] = true
		assignedShifts[shift.ID] = true
	}

	return assignments
}

// Optimize is the library entry point: it builds the availability index
// from the workers' calendars, matches, and summarizes.
func Optimize(shifts []*store.Shift, workers []*store.Worker) ([]*store.Assignment, store.Metrics) {
	scorer := scoring.NewScorer(scoring.BuildAvailabilityIndex(workers))
	assignments := Match(shifts, workers, scorer)
	return assignments, Summarize(assignments, len(shifts), len(workers))
}
