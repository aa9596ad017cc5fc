package seed

import "time"

// Status is the outcome of a seed run.
type Status string

const (
	StatusPending Status = "pending" // no run recorded yet
	StatusSeeded  Status = "seeded"
	StatusPartial Status = "partial" // stored, but some records or edges were dropped
	StatusSkipped Status = "skipped" // catalog already populated, or seeding disabled
	StatusFailed  Status = "failed"
)

// DropReason explains why a prerequisite edge was not stored.
type DropReason string

const (
	DropUnknownCourse DropReason = "unknown_course"
	DropSelfReference DropReason = "self_reference"
	DropCycle         DropReason = "cycle"
	DropDuplicate     DropReason = "duplicate"
)

// DroppedEdge is a prerequisite listed in the source that was not stored.
type DroppedEdge struct {
	CourseID      string     `json:"course_id"`
	RequirementID string     `json:"requirement_id"`
	Reason        DropReason `json:"reason"`
}

// DroppedCourse is a source record rejected by validation.
type DroppedCourse struct {
	Index  int    `json:"index"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Result is the structured outcome of Seed.
type Result struct {
	Status         Status          `json:"status"`
	Source         string          `json:"source,omitempty"`
	CoursesWritten int             `json:"courses_written"`
	EdgesWritten   int             `json:"edges_written"`
	DroppedEdges   []DroppedEdge   `json:"dropped_edges,omitempty"`
	DroppedCourses []DroppedCourse `json:"dropped_courses,omitempty"`
	Err            error           `json:"-"`
	FinishedAt     time.Time       `json:"finished_at"`
}

// Failed reports whether the run failed.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// ErrorMessage returns the failure reason, or "".
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
