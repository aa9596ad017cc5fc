package dto

import "time"

// HealthResponse reports liveness together with the catalog seed outcome.
type HealthResponse struct {
	Status string       `json:"status" example:"ok"`
	Seed   SeedResponse `json:"seed"`
}

// SeedResponse summarizes the last catalog seed run.
type SeedResponse struct {
	Status         string    `json:"status" example:"seeded"`
	Source         string    `json:"source,omitempty" example:"data.json"`
	CoursesWritten int       `json:"courses_written" example:"52"`
	EdgesWritten   int       `json:"edges_written" example:"61"`
	DroppedEdges   int       `json:"dropped_edges" example:"0"`
	DroppedCourses int       `json:"dropped_courses" example:"0"`
	Error          string    `json:"error,omitempty"`
	FinishedAt     time.Time `json:"finished_at,omitempty"`
}
