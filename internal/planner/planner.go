package planner

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/crewware/roster/internal/config"
	"github.com/crewware/roster/internal/notify"
	"github.com/crewware/roster/internal/scoring"
	"github.com/crewware/roster/internal/store"
)

// Planner wires the pure scheduling core to the record store and the
// event bus. Loading and persisting are the only I/O; everything between
// is a pure function of the loaded data, so concurrent runs for different
// scopes need no locking.
type Planner struct {
	store  store.Store
	notify notify.Client
	cfg    *config.Config
	logger *slog.Logger
}

func New(s store.Store, n notify.Client, cfg *config.Config, logger *slog.Logger) *Planner {
	return &Planner{store: s, notify: n, cfg: cfg, logger: logger}
}

// RunResult is the outcome of one optimizer run.
type RunResult struct {
	Run         *store.Run          `json:"run"`
	Assignments []*store.Assignment `json:"assignments"`
	Metrics     store.Metrics       `json:"metrics"`
}

// RunOptimize loads the open shifts and worker snapshot for a scope, runs
// the greedy matcher, persists the result, and notifies once per created
// assignment. Notification is fire-and-forget: publish failures are logged
// and never roll back the persisted assignments.
func (p *Planner) RunOptimize(ctx context.Context, scope string) (*RunResult, error) {
	shifts, err := p.store.ListOpenShifts(ctx, scope)
	if err != nil {
		return nil, err
	}
	workers, err := p.store.ListAvailableWorkers(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.attachAvailability(ctx, workers); err != nil {
		return nil, err
	}

	p.logger.Info("optimizer run starting", "scope", scope,
		"open_shifts", len(shifts), "available_workers", len(workers))

	scorer := scoring.NewScorer(scoring.BuildAvailabilityIndex(workers))
	assignments := Match(shifts, workers, scorer)
	metrics := Summarize(assignments, len(shifts), len(workers))

	run := &store.Run{
		ID:           uuid.New(),
		Scope:        scope,
		ShiftsTotal:  len(shifts),
		ShiftsFilled: len(assignments),
		Metrics:      metrics,
	}
	for _, a := range assignments {
		a.RunID = run.ID
	}

	if err := p.store.SaveAssignments(ctx, run, assignments); err != nil {
		return nil, err
	}

	optimizeRunsTotal.Inc()
	assignmentsCreatedTotal.Add(float64(len(assignments)))

	p.publishRunEvents(run, assignments)

	p.logger.Info("optimizer run complete", "run_id", run.ID, "scope", scope,
		"filled", len(assignments), "fill_rate", metrics.FillRate,
		"average_score", metrics.AverageScore)

	return &RunResult{Run: run, Assignments: assignments, Metrics: metrics}, nil
}

func (p *Planner) attachAvailability(ctx context.Context, workers []*store.Worker) error {
	if len(workers) == 0 {
		return nil
	}
	ids := make([]string, len(workers))
	for i, w := range workers {
		ids[i] = w.ID
	}
	availability, err := p.store.ListWorkerAvailability(ctx, ids)
	if err != nil {
		return err
	}
	for _, w := range workers {
		// A worker with no calendar rows is available on no date; the
		// scoring gate rejects them for every shift.
		w.AvailableDates = availability[w.ID]
	}
	return nil
}

func (p *Planner) publishRunEvents(run *store.Run, assignments []*store.Assignment) {
	if p.notify == nil {
		return
	}
	for _, a := range assignments {
		err := p.notify.Publish(notify.SubjectAssignmentCreated(a.ID.String()), notify.AssignmentCreatedEvent{
			AssignmentID: a.ID.String(),
			RunID:        run.ID.String(),
			ShiftID:      a.ShiftID,
			WorkerID:     a.WorkerID,
			Score:        a.Score,
			Reasons:      a.Reasons,
		})
		if err != nil {
			p.logger.Warn("failed to publish assignment event", "assignment_id", a.ID, "error", err)
		}
	}

	subject := notify.SubjectRunCompleted(run.ID.String())
	if len(assignments) == 0 {
		subject = notify.SubjectRunEmpty(run.ID.String())
	}
	_ = p.notify.Publish(subject, notify.RunCompletedEvent{
		RunID:           run.ID.String(),
		Scope:           run.Scope,
		ShiftsTotal:     run.ShiftsTotal,
		ShiftsFilled:    run.ShiftsFilled,
		FillRate:        run.Metrics.FillRate,
		AverageScore:    run.Metrics.AverageScore,
		WorkersUtilized: run.Metrics.WorkersUtilized,
		Timestamp:       time.Now(),
	})
}

// DetectConflicts loads committed assignments matching the filter and
// reports overlapping pairs per worker.
func (p *Planner) DetectConflicts(ctx context.Context, filter store.AssignmentFilter) ([]store.Conflict, error) {
	committed, err := p.store.ListCommittedAssignments(ctx, filter)
	if err != nil {
		return nil, err
	}
	conflicts := FindConflicts(committed)
	conflictsDetectedTotal.Add(float64(len(conflicts)))

	if p.notify != nil {
		for _, c := range conflicts {
			_ = p.notify.Publish(notify.SubjectConflictDetected(c.WorkerID), notify.ConflictDetectedEvent{
				WorkerID:  c.WorkerID,
				FirstRef:  c.First.Ref,
				SecondRef: c.Second.Ref,
			})
		}
	}
	return conflicts, nil
}

// AnalyzeStoredWorkload builds a workload report over the committed
// assignments in the reporting window.
func (p *Planner) AnalyzeStoredWorkload(ctx context.Context, filter store.AssignmentFilter) (store.WorkloadReport, error) {
	committed, err := p.store.ListCommittedAssignments(ctx, filter)
	if err != nil {
		return store.WorkloadReport{}, err
	}
	return AnalyzeWorkload(committed), nil
}

// ForecastDemand buckets upcoming stored projects against the current
// available-crew snapshot.
func (p *Planner) ForecastDemand(ctx context.Context, horizonWeeks int) ([]store.WeeklyForecast, error) {
	if horizonWeeks <= 0 {
		horizonWeeks = p.cfg.Planner.ForecastHorizonWeeks
	}
	projects, err := p.store.ListUpcomingProjects(ctx, horizonWeeks)
	if err != nil {
		return nil, err
	}
	available, err := p.store.CountAvailableWorkers(ctx)
	if err != nil {
		return nil, err
	}
	return Forecast(projects, available), nil
}

// SetupSubscriptions registers the NATS trigger for optimizer runs.
func (p *Planner) SetupSubscriptions() {
	if p.notify == nil {
		return
	}
	_ = p.notify.Subscribe(notify.SubjectRunRequest, func(_ string, data []byte) {
		var req notify.RunRequestEvent
		if err := json.Unmarshal(data, &req); err != nil {
			p.logger.Warn("invalid run request event", "error", err)
			return
		}
		if _, err := p.RunOptimize(context.Background(), req.Scope); err != nil {
			p.logger.Error("failed to run optimizer from event", "scope", req.Scope, "error", err)
		}
	})
}
