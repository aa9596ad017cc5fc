package services

import (
	"github.com/rs/zerolog"

	"github.com/yigit/coursemap/internal/app/repositories"
	"github.com/yigit/coursemap/internal/pkg/auth"
	"github.com/yigit/coursemap/internal/pkg/cache"
	"github.com/yigit/coursemap/internal/pkg/logger"
)

// Services holds every application service
type Services struct {
	AuthService     AuthService
	GraphService    GraphService
	ProgressService ProgressService
}

// NewServices wires services on top of the repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, graphCache cache.Cache) *Services {
	return &Services{
		AuthService:     NewAuthService(repos.UserRepository, jwtService, component("auth")),
		GraphService:    NewGraphService(repos.CourseRepository, graphCache, component("graph")),
		ProgressService: NewProgressService(repos.ProgressRepository, component("progress")),
	}
}

func component(name string) zerolog.Logger {
	return logger.WithComponent(name + "_service")
}
