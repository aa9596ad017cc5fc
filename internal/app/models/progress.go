package models

import (
	"strings"
	"time"
)

// ProgressStatus is the completion state a user records for a course.
type ProgressStatus string

const (
	StatusPending    ProgressStatus = "pending"
	StatusInProgress ProgressStatus = "in-progress"
	StatusCompleted  ProgressStatus = "completed"
	StatusFailed     ProgressStatus = "failed"
)

// statusAliases maps accepted client vocabulary onto canonical statuses.
// Aliases are stored verbatim so clients read back what they wrote.
var statusAliases = map[ProgressStatus]ProgressStatus{
	"done":        StatusCompleted,
	"aprobado":    StatusCompleted,
	"desaprobado": StatusFailed,
	"pendiente":   StatusPending,
}

// ParseProgressStatus normalises raw and reports whether it is a known status.
func ParseProgressStatus(raw string) (ProgressStatus, bool) {
	status := ProgressStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed:
		return status, true
	}
	_, ok := statusAliases[status]
	return status, ok
}

// KnownStatuses lists every accepted status value, canonical ones first.
func KnownStatuses() []string {
	return []string{
		string(StatusPending), string(StatusInProgress), string(StatusCompleted), string(StatusFailed),
		"done", "aprobado", "desaprobado", "pendiente",
	}
}

// StudentProgress is one ledger row; (UserID, CourseID) is unique.
type StudentProgress struct {
	ID        int64          `json:"id" db:"id"`
	UserID    string         `json:"user_id" db:"user_id"`
	CourseID  string         `json:"course_id" db:"course_id"`
	Status    ProgressStatus `json:"status" db:"status"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// ProgressItem is a single (course, status) pair submitted in a sync batch.
type ProgressItem struct {
	CourseID string
	Status   ProgressStatus
}
