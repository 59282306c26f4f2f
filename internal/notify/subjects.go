package notify

const (
	SubjectRunRequest = "crew.run.request"

	StreamName   = "CREW_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectAssignmentCreated(id string) string { return "crew.assignment." + id + ".created" }

func SubjectRunCompleted(runID string) string { return "crew.run." + runID + ".completed" }
func SubjectRunEmpty(runID string) string     { return "crew.run." + runID + ".empty" }

func SubjectConflictDetected(workerID string) string { return "crew.conflict." + workerID + ".detected" }
