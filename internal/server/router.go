package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"freelahub/internal/config"
	"freelahub/internal/metrics"
	"freelahub/internal/middleware"
	"freelahub/internal/modules/auth"
	"freelahub/internal/modules/candidacy"
	"freelahub/internal/modules/profile"
	"freelahub/internal/modules/project"
	jwtsvc "freelahub/internal/pkg/jwt"
	"freelahub/internal/pkg/mailer"
	"freelahub/internal/repository"
)

// Deps are the process-wide resources the router is built from.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Mailer  mailer.Mailer
	Metrics *metrics.Metrics
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	userRepo := repository.NewUserRepository(d.DB)
	profileRepo := repository.NewProfileRepository(d.DB)
	projectRepo := repository.NewProjectRepository(d.DB)
	candidacyRepo := repository.NewCandidacyRepository(d.DB)

	profileService := profile.NewService(userRepo, profileRepo)
	authService := auth.NewService(
		userRepo,
		profileService,
		j,
		auth.NewRedisResetStore(d.Redis),
		d.Mailer,
		d.Metrics,
		auth.Config{
			BcryptCost:        cfg.Auth.BcryptCost,
			DefaultHourlyRate: cfg.Profile.DefaultHourlyRate,
			ResetTokenTTL:     cfg.Auth.ResetTokenTTL,
			ResetLinkBase:     cfg.Auth.ResetLinkBase,
		},
	)
	projectService := project.NewService(projectRepo)
	candidacyService := candidacy.NewService(candidacyRepo, projectService)

	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	projectHandler := project.NewHandler(projectService)
	candidacyHandler := candidacy.NewHandler(candidacyService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(),
		middleware.RequestLogger(),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
		d.Metrics.Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.InternalTokenAuth(cfg.HTTP.MetricsToken), gin.WrapH(d.Metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		projectHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			projectHandler.RegisterProtectedRoutes(protected)
			candidacyHandler.RegisterRoutes(protected)
		}
	}

	return r
}
