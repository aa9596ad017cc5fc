package models

// Course is a catalog entry identified by its stable catalog code.
type Course struct {
	ID          string `json:"id" db:"id" example:"CS101"`
	Name        string `json:"name" db:"name" example:"Introduction to Programming"`
	Cycle       int    `json:"cycle" db:"cycle" example:"1"`     // Academic term number, starting at 1
	Credits     int    `json:"credits" db:"credits" example:"4"` // Never negative
	IsMandatory bool   `json:"is_mandatory" db:"is_mandatory" example:"true"`
}

// Prerequisite states that CourseID requires RequirementID.
type Prerequisite struct {
	CourseID      string `json:"course_id" db:"course_id"`
	RequirementID string `json:"requirement_id" db:"requirement_id"`
}

// CourseRef is the {id, name} pair used when listing related courses.
type CourseRef struct {
	ID   string `json:"id" example:"CS101"`
	Name string `json:"name" example:"Introduction to Programming"`
}
