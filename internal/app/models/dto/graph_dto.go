package dto

import "github.com/yigit/coursemap/internal/app/models"

// GraphResponse is the positioned node/edge projection of the catalog.
type GraphResponse struct {
	Nodes []NodeResponse `json:"nodes"`
	Edges []EdgeResponse `json:"edges"`
}

// NodeResponse is one course rendered as a graph node.
type NodeResponse struct {
	ID       string   `json:"id" example:"CS201"`
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
	Type     string   `json:"type" example:"default"`
}

// NodeData carries the course fields shown by the renderer.
type NodeData struct {
	Label         string             `json:"label" example:"CS201\nData Structures"`
	Name          string             `json:"name" example:"Data Structures"`
	Credits       int                `json:"credits" example:"4"`
	Cycle         int                `json:"cycle" example:"2"`
	IsMandatory   bool               `json:"is_mandatory" example:"true"`
	Prerequisites []models.CourseRef `json:"prerequisites"`
}

// Position is a node's layout coordinate.
type Position struct {
	X int `json:"x" example:"500"`
	Y int `json:"y" example:"150"`
}

// EdgeResponse points from a prerequisite to the course that requires it.
type EdgeResponse struct {
	ID       string `json:"id" example:"eCS101-CS201"`
	Source   string `json:"source" example:"CS101"`
	Target   string `json:"target" example:"CS201"`
	Animated bool   `json:"animated" example:"true"`
}

// CourseDetailResponse is a single course with both directions of the prerequisite relation.
type CourseDetailResponse struct {
	models.Course
	Requirements []models.CourseRef `json:"requirements"`
	RequiredFor  []models.CourseRef `json:"required_for"`
}
