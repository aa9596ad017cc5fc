package repositories

import (
	"github.com/yigit/coursemap/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository   *CourseRepository
	UserRepository     *UserRepository
	ProgressRepository *ProgressRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Database) *Repositories {
	return &Repositories{
		CourseRepository:   NewCourseRepository(database),
		UserRepository:     NewUserRepository(database),
		ProgressRepository: NewProgressRepository(database),
	}
}
