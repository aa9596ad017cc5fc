package dto

// ProgressItemRequest is one (course, status) pair of a sync batch.
type ProgressItemRequest struct {
	CourseID string `json:"course_id" binding:"required" example:"CS101"`
	Status   string `json:"status" binding:"required" example:"completed"`
}

// SyncProgressRequest is the body of POST /sync-progress.
type SyncProgressRequest struct {
	Progress []ProgressItemRequest `json:"progress" binding:"required,dive"`
}

// ProgressResponse is one stored ledger entry.
type ProgressResponse struct {
	CourseID string `json:"course_id" example:"CS101"`
	Status   string `json:"status" example:"completed"`
}
