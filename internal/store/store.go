package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Worker is a schedulable crew profile. Workers are owned by the upstream
// CRM; this service only reads them. Rating defaults to 3 when the source
// record carries none; the default is applied here at the boundary, never
// inside the scheduling core.
type Worker struct {
	ID         string   `json:"worker_id"`
	Name       string   `json:"name,omitempty"`
	Skills     []string `json:"skills"`
	HourlyRate float64  `json:"hourly_rate"`
	Rating     float64  `json:"rating"`
	Location   string   `json:"location,omitempty"`

	// AvailableDates holds ISO dates (YYYY-MM-DD) the worker may be
	// scheduled on. Empty means available on no date.
	AvailableDates []string `json:"available_dates,omitempty"`
}

// Shift is a single time-boxed staffing need.
type Shift struct {
	ID             string    `json:"shift_id"`
	ProjectID      string    `json:"project_id,omitempty"`
	Title          string    `json:"title,omitempty"`
	RequiredSkills []string  `json:"required_skills"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Location       string    `json:"location,omitempty"`
}

// Assignment pairs exactly one worker to exactly one shift. Score and
// reasons are captured at match time and never recomputed.
type Assignment struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	ShiftID   string    `json:"shift_id"`
	WorkerID  string    `json:"worker_id"`
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CommittedAssignment is the persisted view of an assignment used by
// conflict detection and workload analysis: just the worker, the time
// window, and an opaque reference for display.
type CommittedAssignment struct {
	Ref       string    `json:"ref"`
	WorkerID  string    `json:"worker_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Conflict reports two committed assignments for the same worker whose
// half-open time windows overlap.
type Conflict struct {
	Type     string              `json:"type"`
	WorkerID string              `json:"worker_id"`
	First    CommittedAssignment `json:"first"`
	Second   CommittedAssignment `json:"second"`
}

// Metrics summarizes one optimizer run.
type Metrics struct {
	FillRate              int `json:"fill_rate"`
	AverageScore          int `json:"average_score"`
	WorkersUtilized       int `json:"workers_utilized"`
	TotalWorkersAvailable int `json:"total_workers_available"`
}

// WorkerLoad is one worker's accumulated hours and shift count over a
// reporting window.
type WorkerLoad struct {
	WorkerID string  `json:"worker_id"`
	Hours    float64 `json:"hours"`
	Shifts   int     `json:"shifts"`
}

// WorkloadReport classifies workers against the population average.
type WorkloadReport struct {
	Workers       []WorkerLoad `json:"workers"`
	Overworked    []WorkerLoad `json:"overworked"`
	Underutilized []WorkerLoad `json:"underutilized"`
	AverageHours  float64      `json:"average_hours"`
}

// DefaultRating is assumed for workers whose source record carries no
// rating.
const DefaultRating = 3

// DefaultCrewSize is assumed for projects whose crew size is unspecified.
// Like the rating default, it is applied where external data enters the
// system, never inside the scheduling core.
const DefaultCrewSize = 5

// ProjectDemand is an upcoming project's projected crew need. CrewSize is
// always populated by the time it reaches the core (see DefaultCrewSize).
type ProjectDemand struct {
	ProjectID string    `json:"project_id"`
	StartDate time.Time `json:"start_date"`
	CrewSize  int       `json:"crew_size"`
}

// WeeklyForecast is one demand bucket keyed by calendar week.
type WeeklyForecast struct {
	Week          string `json:"week"`
	Year          int    `json:"year"`
	WeekNumber    int    `json:"week_number"`
	ProjectsCount int    `json:"projects_count"`
	CrewNeeded    int    `json:"crew_needed"`
	AvailableCrew int    `json:"available_crew"`
	Gap           int    `json:"gap"`
}

// Run records one optimizer invocation for audit and stats.
type Run struct {
	ID           uuid.UUID `json:"run_id"`
	Scope        string    `json:"scope,omitempty"`
	ShiftsTotal  int       `json:"shifts_total"`
	ShiftsFilled int       `json:"shifts_filled"`
	Metrics      Metrics   `json:"metrics"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssignmentFilter narrows committed-assignment queries.
type AssignmentFilter struct {
	WorkerID string
	Scope    string
	From     *time.Time
	To       *time.Time
	Limit    int
}

type Stats struct {
	OpenShifts           int     `json:"open_shifts"`
	AvailableWorkers     int     `json:"available_workers"`
	CommittedAssignments int     `json:"committed_assignments"`
	RunsLast7Days        int     `json:"runs_last_7_days"`
	AvgFillRate          float64 `json:"avg_fill_rate"`
}

type Store interface {
	ListOpenShifts(ctx context.Context, scope string) ([]*Shift, error)
	ListAvailableWorkers(ctx context.Context) ([]*Worker, error)
	ListWorkerAvailability(ctx context.Context, workerIDs []string) (map[string][]string, error)
	CountAvailableWorkers(ctx context.Context) (int, error)

	SaveAssignments(ctx context.Context, run *Run, assignments []*Assignment) error
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]*Assignment, error)
	ListCommittedAssignments(ctx context.Context, filter AssignmentFilter) ([]CommittedAssignment, error)

	ListUpcomingProjects(ctx context.Context, horizonWeeks int) ([]ProjectDemand, error)

	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
