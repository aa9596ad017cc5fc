package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	appControllers "github.com/yigit/coursemap/internal/app/controllers"
	appMigrations "github.com/yigit/coursemap/internal/app/migrations"
	appRepos "github.com/yigit/coursemap/internal/app/repositories"
	appRoutes "github.com/yigit/coursemap/internal/app/routes"
	appServices "github.com/yigit/coursemap/internal/app/services"
	"github.com/yigit/coursemap/internal/config"
	"github.com/yigit/coursemap/internal/db"
	appMiddleware "github.com/yigit/coursemap/internal/middleware"
	pkgAuth "github.com/yigit/coursemap/internal/pkg/auth"
	"github.com/yigit/coursemap/internal/pkg/cache"
	"github.com/yigit/coursemap/internal/pkg/logger"
	"github.com/yigit/coursemap/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	SeedTracker    *seed.Tracker
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.Open(ctx, cfg.Database.URL, db.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Str("dialect", string(database.Dialect)).Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRedis connects to Redis when an address is configured. Redis only
// backs optional features, so a failed connection is logged and nil returned.
func SetupRedis(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		lgr.Info().Msg("Redis not configured; graph cache and login rate limit disabled")
		return nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable; continuing without it")
		return nil
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Database, redisClient *redis.Client, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, SeedTracker: seed.NewTracker()}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		Algorithm:      cfg.JWT.Algorithm,
		AccessTokenExp: cfg.TokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	var graphCache cache.Cache = cache.Nop{}
	if redisClient != nil {
		graphCache = cache.NewRedisCache(redisClient, "coursemap:", cfg.Redis.GraphTTL)
		deps.RateLimiter = appMiddleware.NewRateLimiter(redisClient)
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, graphCache)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.Services.AuthService, logger.WithComponent("auth_controller")),
		User:     appControllers.NewUserController(deps.Services.AuthService),
		Graph:    appControllers.NewGraphController(deps.Services.GraphService),
		Progress: appControllers.NewProgressController(deps.Services.ProgressService),
		Health:   appControllers.NewHealthController(deps.SeedTracker),
	}

	return deps
}

// RunSeed loads the catalog source into an empty store and records the
// outcome for the health probes. It never fails startup.
func RunSeed(ctx context.Context, cfg *config.Config, deps *Dependencies) seed.Result {
	if !cfg.Seed.Enabled {
		result := seed.Result{Status: seed.StatusSkipped}
		deps.SeedTracker.Record(result)
		deps.Logger.Info().Msg("Catalog seeding disabled")
		return result
	}

	result := seed.Seed(ctx, deps.Repos.CourseRepository, cfg.Seed.File)
	deps.SeedTracker.Record(result)

	if result.Status == seed.StatusSeeded || result.Status == seed.StatusPartial {
		deps.Services.GraphService.Invalidate(ctx)
	}
	return result
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidatorTagNames()

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr))
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(appMiddleware.RequestTimeout(cfg.Server.RequestTimeout))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, appRoutes.Options{
		RateLimiter:    deps.RateLimiter,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
	})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
