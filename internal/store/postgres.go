package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const shiftColumns = `shift_id, project_id, title, required_skills, start_time, end_time, location`

func (s *PostgresStore) ListOpenShifts(ctx context.Context, scope string) ([]*Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM crew_shifts WHERE status = 'open'`
	args := []interface{}{}
	if scope != "" {
		query += ` AND project_id = $1`
		args = append(args, scope)
	}
	query += ` ORDER BY start_time ASC, shift_id ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*Shift
	for rows.Next() {
		sh := &Shift{}
		if err := rows.Scan(&sh.ID, &sh.ProjectID, &sh.Title, &sh.RequiredSkills,
			&sh.StartTime, &sh.EndTime, &sh.Location); err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

func (s *PostgresStore) ListAvailableWorkers(ctx context.Context) ([]*Worker, error) {
	// Rating is nullable in the CRM schema; default to 3 here so the
	// scheduling core never sees an absent rating.
	rows, err := s.pool.Query(ctx, `
		SELECT worker_id, name, skills, hourly_rate, COALESCE(rating, 3), location
		FROM crew_workers WHERE active
		ORDER BY worker_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []*Worker
	for rows.Next() {
		w := &Worker{}
		if err := rows.Scan(&w.ID, &w.Name, &w.Skills, &w.HourlyRate, &w.Rating, &w.Location); err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

func (s *PostgresStore) ListWorkerAvailability(ctx context.Context, workerIDs []string) (map[string][]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT worker_id, to_char(day, 'YYYY-MM-DD')
		FROM crew_worker_availability
		WHERE worker_id = ANY($1)
		ORDER BY worker_id, day`, workerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availability := make(map[string][]string)
	for rows.Next() {
		var workerID, day string
		if err := rows.Scan(&workerID, &day); err != nil {
			return nil, err
		}
		availability[workerID] = append(availability[workerID], day)
	}
	return availability, rows.Err()
}

func (s *PostgresStore) CountAvailableWorkers(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM crew_workers WHERE active`).Scan(&count)
	return count, err
}

// SaveAssignments persists the run record and its assignments in one
// transaction and flips the covered shifts out of the open pool.
func (s *PostgresStore) SaveAssignments(ctx context.Context, run *Run, assignments []*Assignment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO crew_runs (run_id, scope, shifts_total, shifts_filled,
			fill_rate, average_score, workers_utilized, workers_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		run.ID, run.Scope, run.ShiftsTotal, run.ShiftsFilled,
		run.Metrics.FillRate, run.Metrics.AverageScore,
		run.Metrics.WorkersUtilized, run.Metrics.TotalWorkersAvailable,
	).Scan(&run.CreatedAt)
	if err != nil {
		return err
	}

	for _, a := range assignments {
		err = tx.QueryRow(ctx, `
			INSERT INTO crew_assignments (id, run_id, shift_id, worker_id, score, reasons)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at`,
			a.ID, a.RunID, a.ShiftID, a.WorkerID, a.Score, a.Reasons,
		).Scan(&a.CreatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE crew_shifts SET status = 'assigned' WHERE shift_id = $1`, a.ShiftID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) ListAssignments(ctx context.Context, filter AssignmentFilter) ([]*Assignment, error) {
	query := `SELECT id, run_id, shift_id, worker_id, score, reasons, created_at
		FROM crew_assignments WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.WorkerID != "" {
		n++
		query += fmt.Sprintf(" AND worker_id = $%d", n)
		args = append(args, filter.WorkerID)
	}
	query += " ORDER BY created_at ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*Assignment
	for rows.Next() {
		a := &Assignment{}
		if err := rows.Scan(&a.ID, &a.RunID, &a.ShiftID, &a.WorkerID,
			&a.Score, &a.Reasons, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ListCommittedAssignments returns assignments joined with their shift
// windows, the shape consumed by conflict detection and workload analysis.
func (s *PostgresStore) ListCommittedAssignments(ctx context.Context, filter AssignmentFilter) ([]CommittedAssignment, error) {
	query := `SELECT a.shift_id, a.worker_id, sh.start_time, sh.end_time
		FROM crew_assignments a
		JOIN crew_shifts sh ON sh.shift_id = a.shift_id
		WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.WorkerID != "" {
		n++
		query += fmt.Sprintf(" AND a.worker_id = $%d", n)
		args = append(args, filter.WorkerID)
	}
	if filter.Scope != "" {
		n++
		query += fmt.Sprintf(" AND sh.project_id = $%d", n)
		args = append(args, filter.Scope)
	}
	if filter.From != nil {
		n++
		query += fmt.Sprintf(" AND sh.end_time > $%d", n)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		query += fmt.Sprintf(" AND sh.start_time < $%d", n)
		args = append(args, *filter.To)
	}
	query += " ORDER BY a.created_at ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var committed []CommittedAssignment
	for rows.Next() {
		var c CommittedAssignment
		if err := rows.Scan(&c.Ref, &c.WorkerID, &c.StartTime, &c.EndTime); err != nil {
			return nil, err
		}
		committed = append(committed, c)
	}
	return committed, rows.Err()
}

func (s *PostgresStore) ListUpcomingProjects(ctx context.Context, horizonWeeks int) ([]ProjectDemand, error) {
	// Crew size is nullable upstream; the default of 5 is applied at this
	// boundary so forecasting never sees an absent size.
	rows, err := s.pool.Query(ctx, `
		SELECT project_id, start_date, COALESCE(crew_size, 5)
		FROM crew_projects
		WHERE start_date >= now() AND start_date < now() + ($1 * interval '1 week')
		ORDER BY start_date ASC`, horizonWeeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectDemand
	for rows.Next() {
		var p ProjectDemand
		if err := rows.Scan(&p.ProjectID, &p.StartDate, &p.CrewSize); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

const runColumns = `run_id, scope, shifts_total, shifts_filled,
	fill_rate, average_score, workers_utilized, workers_available, created_at`

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	r := &Run{}
	err := s.pool.QueryRow(ctx, `
		SELECT `+runColumns+` FROM crew_runs WHERE run_id = $1`, id,
	).Scan(&r.ID, &r.Scope, &r.ShiftsTotal, &r.ShiftsFilled,
		&r.Metrics.FillRate, &r.Metrics.AverageScore,
		&r.Metrics.WorkersUtilized, &r.Metrics.TotalWorkersAvailable, &r.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+runColumns+` FROM crew_runs
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Scope, &r.ShiftsTotal, &r.ShiftsFilled,
			&r.Metrics.FillRate, &r.Metrics.AverageScore,
			&r.Metrics.WorkersUtilized, &r.Metrics.TotalWorkersAvailable, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM crew_shifts WHERE status = 'open'),
			(SELECT COUNT(*) FROM crew_workers WHERE active),
			(SELECT COUNT(*) FROM crew_assignments),
			(SELECT COUNT(*) FROM crew_runs WHERE created_at > now() - interval '7 days'),
			COALESCE((SELECT AVG(fill_rate) FROM crew_runs WHERE created_at > now() - interval '7 days'), 0)`,
	).Scan(&stats.OpenShifts, &stats.AvailableWorkers, &stats.CommittedAssignments,
		&stats.RunsLast7Days, &stats.AvgFillRate)
	return stats, err
}
