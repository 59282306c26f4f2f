package scoring

import (
	"time"

	"github.com/crewware/roster/internal/store"
)

// DateLayout is the calendar-date key format used throughout availability
// tracking.
const DateLayout = "2006-01-02"

// AvailabilityIndex maps workers to the set of calendar dates they may be
// scheduled on. A worker with no entry is available on no date.
type AvailabilityIndex struct {
	dates map[string]map[string]struct{}
}

func NewAvailabilityIndex() *AvailabilityIndex {
	return &AvailabilityIndex{dates: make(map[string]map[string]struct{})}
}

// BuildAvailabilityIndex indexes the AvailableDates already attached to
// each worker.
func BuildAvailabilityIndex(workers []*store.Worker) *AvailabilityIndex {
	ix := NewAvailabilityIndex()
	for _, w := range workers {
		for _, day := range w.AvailableDates {
			ix.Add(w.ID, day)
		}
	}
	return ix
}

// Add marks a worker available on the given ISO date.
func (ix *AvailabilityIndex) Add(workerID, day string) {
	set, ok := ix.dates[workerID]
	if !ok {
		set = make(map[string]struct{})
		ix.dates[workerID] = set
	}
	set[day] = struct{}{}
}

// Available reports whether the worker may be scheduled on the calendar
// date of t.
func (ix *AvailabilityIndex) Available(workerID string, t time.Time) bool {
	set, ok := ix.dates[workerID]
	if !ok {
		return false
	}
	_, ok = set[t.Format(DateLayout)]
	return ok
}
