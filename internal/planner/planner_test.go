package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/crewware/roster/internal/config"
	"github.com/crewware/roster/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Mocks

type mockStore struct {
	shifts       []*store.Shift
	workers      []*store.Worker
	availability map[string][]string
	committed    []store.CommittedAssignment
	projects     []store.ProjectDemand

	savedRun         *store.Run
	savedAssignments []*store.Assignment
}

func (m *mockStore) ListOpenShifts(_ context.Context, _ string) ([]*store.Shift, error) {
	return m.shifts, nil
}
func (m *mockStore) ListAvailableWorkers(_ context.Context) ([]*store.Worker, error) {
	return m.workers, nil
}
func (m *mockStore) ListWorkerAvailability(_ context.Context, _ []string) (map[string][]string, error) {
	return m.availability, nil
}
func (m *mockStore) CountAvailableWorkers(_ context.Context) (int, error) {
	return len(m.workers), nil
}
func (m *mockStore) SaveAssignments(_ context.Context, run *store.Run, assignments []*store.Assignment) error {
	run.CreatedAt = time.Now()
	m.savedRun = run
	m.savedAssignments = assignments
	return nil
}
func (m *mockStore) ListAssignments(_ context.Context, _ store.AssignmentFilter) ([]*store.Assignment, error) {
	return m.savedAssignments, nil
}
func (m *mockStore) ListCommittedAssignments(_ context.Context, _ store.AssignmentFilter) ([]store.CommittedAssignment, error) {
	return m.committed, nil
}
func (m *mockStore) ListUpcomingProjects(_ context.Context, _ int) ([]store.ProjectDemand, error) {
	return m.projects, nil
}
func (m *mockStore) GetRun(_ context.Context, _ uuid.UUID) (*store.Run, error) {
	return m.savedRun, nil
}
func (m *mockStore) ListRuns(_ context.Context, _ int) ([]*store.Run, error) { return nil, nil }
func (m *mockStore) GetStats(_ context.Context) (*store.Stats, error)        { return &store.Stats{}, nil }
func (m *mockStore) Close() error                                            { return nil }

type mockNotify struct {
	published []string
	fail      bool
}

func (m *mockNotify) Publish(subject string, _ interface{}) error {
	if m.fail {
		return errors.New("nats down")
	}
	m.published = append(m.published, subject)
	return nil
}
func (m *mockNotify) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (m *mockNotify) Close()                                           {}

func testPlanner(s store.Store, n *mockNotify) *Planner {
	cfg := &config.Config{}
	cfg.Planner.ForecastHorizonWeeks = 8
	if n == nil {
		return New(s, nil, cfg, discardLogger())
	}
	return New(s, n, cfg, discardLogger())
}

func fixtureStore() *mockStore {
	day := time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)
	return &mockStore{
		shifts: []*store.Shift{
			testShift("sh-1", day, []string{"rigging"}, "NYC"),
			testShift("sh-2", day.Add(time.Hour), nil, ""),
		},
		workers: []*store.Worker{
			testWorker("w-1", []string{"rigging"}, 5, "NYC"),
			testWorker("w-2", nil, 3, ""),
		},
		availability: map[string][]string{
			"w-1": {"2024-11-01"},
			"w-2": {"2024-11-01"},
		},
	}
}

func TestRunOptimizePersistsAndPublishes(t *testing.T) {
	ms := fixtureStore()
	mn := &mockNotify{}
	p := testPlanner(ms, mn)

	result, err := p.RunOptimize(context.Background(), "")
	if err != nil {
		t.Fatalf("RunOptimize failed: %v", err)
	}

	if len(result.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(result.Assignments))
	}
	if ms.savedRun == nil {
		t.Fatal("expected run to be persisted")
	}
	if ms.savedRun.ShiftsFilled != 2 || ms.savedRun.ShiftsTotal != 2 {
		t.Errorf("expected 2/2 shifts filled, got %d/%d",
			ms.savedRun.ShiftsFilled, ms.savedRun.ShiftsTotal)
	}
	for _, a := range ms.savedAssignments {
		if a.RunID != ms.savedRun.ID {
			t.Errorf("assignment %s not tagged with run id", a.ID)
		}
	}
	if result.Metrics.FillRate != 100 {
		t.Errorf("expected fill rate 100, got %d", result.Metrics.FillRate)
	}

	// One event per assignment plus the run-completed event.
	if len(mn.published) != 3 {
		t.Errorf("expected 3 published events, got %d: %v", len(mn.published), mn.published)
	}
	last := mn.published[len(mn.published)-1]
	want := "crew.run." + ms.savedRun.ID.String() + ".completed"
	if last != want {
		t.Errorf("expected final subject %s, got %s", want, last)
	}
}

func TestRunOptimizeSurvivesPublishFailure(t *testing.T) {
	ms := fixtureStore()
	mn := &mockNotify{fail: true}
	p := testPlanner(ms, mn)

	result, err := p.RunOptimize(context.Background(), "")
	if err != nil {
		t.Fatalf("publish failures must not fail the run: %v", err)
	}
	if ms.savedRun == nil || len(result.Assignments) != 2 {
		t.Error("assignments must persist even when events cannot be published")
	}
}

func TestRunOptimizeWithoutNotify(t *testing.T) {
	ms := fixtureStore()
	p := testPlanner(ms, nil)

	if _, err := p.RunOptimize(context.Background(), ""); err != nil {
		t.Fatalf("expected run to work without an event bus: %v", err)
	}
}

func TestRunOptimizeEmptyRunPublishesEmptyEvent(t *testing.T) {
	ms := &mockStore{}
	mn := &mockNotify{}
	p := testPlanner(ms, mn)

	result, err := p.RunOptimize(context.Background(), "")
	if err != nil {
		t.Fatalf("RunOptimize failed: %v", err)
	}
	if len(result.Assignments) != 0 {
		t.Fatalf("expected no assignments, got %d", len(result.Assignments))
	}
	if len(mn.published) != 1 {
		t.Fatalf("expected exactly the empty-run event, got %v", mn.published)
	}
	want := "crew.run." + result.Run.ID.String() + ".empty"
	if mn.published[0] != want {
		t.Errorf("expected subject %s, got %s", want, mn.published[0])
	}
}

func TestDetectConflictsPublishesPerConflict(t *testing.T) {
	ms := &mockStore{
		committed: []store.CommittedAssignment{
			committed("s1", "W1", 10, 12),
			committed("s2", "W1", 11, 13),
		},
	}
	mn := &mockNotify{}
	p := testPlanner(ms, mn)

	conflicts, err := p.DetectConflicts(context.Background(), store.AssignmentFilter{})
	if err != nil {
		t.Fatalf("DetectConflicts failed: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	if len(mn.published) != 1 {
		t.Errorf("expected 1 conflict event, got %d", len(mn.published))
	}
}

func TestForecastDemandUsesConfiguredHorizon(t *testing.T) {
	ms := &mockStore{
		projects: []store.ProjectDemand{
			{ProjectID: "p1", StartDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), CrewSize: 4},
		},
		workers: []*store.Worker{testWorker("w-1", nil, 3, "")},
	}
	p := testPlanner(ms, nil)

	forecast, err := p.ForecastDemand(context.Background(), 0)
	if err != nil {
		t.Fatalf("ForecastDemand failed: %v", err)
	}
	if len(forecast) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(forecast))
	}
	if forecast[0].AvailableCrew != 1 {
		t.Errorf("expected supply snapshot of 1, got %d", forecast[0].AvailableCrew)
	}
	if forecast[0].Gap != 3 {
		t.Errorf("expected gap 4-1=3, got %d", forecast[0].Gap)
	}
}
