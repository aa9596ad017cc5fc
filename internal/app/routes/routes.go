package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemap/internal/app/controllers"
	"github.com/yigit/coursemap/internal/middleware"
)

// Controllers groups every HTTP controller the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Graph    *controllers.GraphController
	Progress *controllers.ProgressController
	Health   *controllers.HealthController
}

// Options tunes route-level middleware.
type Options struct {
	RateLimiter    *middleware.RateLimiter // nil disables login throttling
	LoginPerMinute int
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, opts Options) {
	// --- Probes ---
	router.GET("/health", c.Health.Health)
	router.GET("/ready", c.Health.Ready)

	// --- Public catalog routes ---
	router.GET("/graph", c.Graph.GetGraph)
	router.GET("/courses/:id", c.Graph.GetCourse)

	// --- Public auth routes ---
	router.POST("/register", c.Auth.Register)
	router.POST("/login", opts.RateLimiter.Limit("login", opts.LoginPerMinute, time.Minute), c.Auth.Login)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/me", c.User.Me)
		authenticated.POST("/sync-progress", c.Progress.SyncProgress)
		authenticated.GET("/progress", c.Progress.GetProgress)
	}
}
