// seed_roster.go — standalone script to create the roster schema and seed
// demo crew data for local development.
//
// Usage:
//
//	go run scripts/seed_roster.go -db postgres://localhost/roster -days 14
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS crew_workers (
	worker_id   TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	skills      TEXT[] NOT NULL DEFAULT '{}',
	hourly_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	rating      DOUBLE PRECISION,
	location    TEXT NOT NULL DEFAULT '',
	active      BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS crew_worker_availability (
	worker_id TEXT NOT NULL REFERENCES crew_workers(worker_id),
	day       DATE NOT NULL,
	PRIMARY KEY (worker_id, day)
);

CREATE TABLE IF NOT EXISTS crew_shifts (
	shift_id        TEXT PRIMARY KEY,
	project_id      TEXT NOT NULL,
	title           TEXT NOT NULL,
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	start_time      TIMESTAMPTZ NOT NULL,
	end_time        TIMESTAMPTZ NOT NULL,
	location        TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL DEFAULT 'open'
);

CREATE TABLE IF NOT EXISTS crew_projects (
	project_id TEXT PRIMARY KEY,
	start_date TIMESTAMPTZ NOT NULL,
	crew_size  INTEGER
);

CREATE TABLE IF NOT EXISTS crew_runs (
	run_id            UUID PRIMARY KEY,
	scope             TEXT NOT NULL DEFAULT '',
	shifts_total      INTEGER NOT NULL,
	shifts_filled     INTEGER NOT NULL,
	fill_rate         INTEGER NOT NULL,
	average_score     INTEGER NOT NULL,
	workers_utilized  INTEGER NOT NULL,
	workers_available INTEGER NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS crew_assignments (
	id         UUID PRIMARY KEY,
	run_id     UUID NOT NULL REFERENCES crew_runs(run_id),
	shift_id   TEXT NOT NULL REFERENCES crew_shifts(shift_id),
	worker_id  TEXT NOT NULL REFERENCES crew_workers(worker_id),
	score      INTEGER NOT NULL,
	reasons    TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type demoWorker struct {
	id       string
	name     string
	skills   []string
	rate     float64
	rating   *float64
	location string
}

func ratingOf(v float64) *float64 { return &v }

var demoWorkers = []demoWorker{
	{"w-ava", "Ava Torres", []string{"rigging", "lighting"}, 42, ratingOf(4.8), "Rotterdam"},
	{"w-ben", "Ben Okafor", []string{"lighting"}, 35, ratingOf(4.2), "Rotterdam"},
	{"w-cho", "Cho Min-seo", []string{"audio", "stagehand"}, 38, ratingOf(4.6), "Amsterdam"},
	{"w-dia", "Diana Petrova", []string{"stagehand"}, 28, nil, "Utrecht"},
	{"w-eli", "Elias Berg", []string{"rigging", "audio", "forklift"}, 45, ratingOf(3.9), "Amsterdam"},
	{"w-fay", "Faye Janssen", []string{"forklift"}, 31, ratingOf(2.8), "Rotterdam"},
}

type demoShift struct {
	id       string
	project  string
	title    string
	skills   []string
	startDay int // offset from today
	startHr  int
	hours    int
	location string
}

var demoShifts = []demoShift{
	{"sh-101", "proj-harbour", "Stage build", []string{"rigging"}, 1, 8, 8, "Rotterdam"},
	{"sh-102", "proj-harbour", "Light focus", []string{"lighting"}, 1, 16, 6, "Rotterdam"},
	{"sh-103", "proj-harbour", "Load out", []string{"forklift", "stagehand"}, 2, 22, 5, "Rotterdam"},
	{"sh-201", "proj-canal", "Sound check", []string{"audio"}, 3, 10, 4, "Amsterdam"},
	{"sh-202", "proj-canal", "General crew", nil, 3, 9, 8, "Amsterdam"},
}

type demoProject struct {
	id       string
	startDay int
	crewSize *int
}

func sizeOf(v int) *int { return &v }

var demoProjects = []demoProject{
	{"proj-harbour", 1, sizeOf(8)},
	{"proj-canal", 3, sizeOf(4)},
	{"proj-fringe", 12, nil},
	{"proj-winter", 24, sizeOf(12)},
}

func main() {
	dbURL := flag.String("db", "postgres://localhost/roster", "Postgres connection URL")
	days := flag.Int("days", 14, "days of availability to seed per worker")
	reset := flag.Bool("reset", false, "truncate existing data first")
	flag.Parse()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	if *reset {
		_, err := pool.Exec(ctx, `TRUNCATE crew_assignments, crew_runs, crew_worker_availability,
			crew_shifts, crew_projects, crew_workers`)
		if err != nil {
			log.Fatalf("truncate: %v", err)
		}
	}

	today := time.Now().Truncate(24 * time.Hour)

	for _, w := range demoWorkers {
		_, err := pool.Exec(ctx, `
			INSERT INTO crew_workers (worker_id, name, skills, hourly_rate, rating, location)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (worker_id) DO NOTHING`,
			w.id, w.name, w.skills, w.rate, w.rating, w.location)
		if err != nil {
			log.Fatalf("insert worker %s: %v", w.id, err)
		}
		// Every worker is available every other day; enough variety for the
		// availability gate to bite in demos.
		for d := 0; d < *days; d += 2 {
			day := today.AddDate(0, 0, d)
			_, err := pool.Exec(ctx, `
				INSERT INTO crew_worker_availability (worker_id, day)
				VALUES ($1, $2) ON CONFLICT DO NOTHING`, w.id, day)
			if err != nil {
				log.Fatalf("insert availability %s: %v", w.id, err)
			}
		}
	}

	for _, sh := range demoShifts {
		start := today.AddDate(0, 0, sh.startDay).Add(time.Duration(sh.startHr) * time.Hour)
		end := start.Add(time.Duration(sh.hours) * time.Hour)
		_, err := pool.Exec(ctx, `
			INSERT INTO crew_shifts (shift_id, project_id, title, required_skills,
				start_time, end_time, location)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (shift_id) DO NOTHING`,
			sh.id, sh.project, sh.title, sh.skills, start, end, sh.location)
		if err != nil {
			log.Fatalf("insert shift %s: %v", sh.id, err)
		}
	}

	for _, p := range demoProjects {
		_, err := pool.Exec(ctx, `
			INSERT INTO crew_projects (project_id, start_date, crew_size)
			VALUES ($1, $2, $3) ON CONFLICT (project_id) DO NOTHING`,
			p.id, today.AddDate(0, 0, p.startDay), p.crewSize)
		if err != nil {
			log.Fatalf("insert project %s: %v", p.id, err)
		}
	}

	fmt.Printf("seeded %d workers, %d shifts, %d projects\n",
		len(demoWorkers), len(demoShifts), len(demoProjects))
}
