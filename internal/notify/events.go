package notify

import "time"

// RunRequestEvent asks the planner to run the optimizer for a scope.
type RunRequestEvent struct {
	Scope     string `json:"scope,omitempty"`
	Requester string `json:"requester,omitempty"`
}

// AssignmentCreatedEvent is published once per assignment created by a
// run. Delivery is fire-and-forget: a failed publish never rolls back the
// persisted assignment.
type AssignmentCreatedEvent struct {
	AssignmentID string   `json:"assignment_id"`
	RunID        string   `json:"run_id"`
	ShiftID      string   `json:"shift_id"`
	WorkerID     string   `json:"worker_id"`
	Score        int      `json:"score"`
	Reasons      []string `json:"reasons,omitempty"`
}

// RunCompletedEvent summarizes a finished optimizer run.
type RunCompletedEvent struct {
	RunID           string    `json:"run_id"`
	Scope           string    `json:"scope,omitempty"`
	ShiftsTotal     int       `json:"shifts_total"`
	ShiftsFilled    int       `json:"shifts_filled"`
	FillRate        int       `json:"fill_rate"`
	AverageScore    int       `json:"average_score"`
	WorkersUtilized int       `json:"workers_utilized"`
	Timestamp       time.Time `json:"timestamp"`
}

// ConflictDetectedEvent flags one overlapping assignment pair.
type ConflictDetectedEvent struct {
	WorkerID  string `json:"worker_id"`
	FirstRef  string `json:"first_ref"`
	SecondRef string `json:"second_ref"`
}
