package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/brightpath/course-scheduler/api/swagger"
	internalhandler "github.com/brightpath/course-scheduler/internal/handler"
	internalmiddleware "github.com/brightpath/course-scheduler/internal/middleware"
	"github.com/brightpath/course-scheduler/internal/repository"
	"github.com/brightpath/course-scheduler/internal/service"
	"github.com/brightpath/course-scheduler/pkg/cache"
	"github.com/brightpath/course-scheduler/pkg/config"
	"github.com/brightpath/course-scheduler/pkg/database"
	"github.com/brightpath/course-scheduler/pkg/logger"
	corsmiddleware "github.com/brightpath/course-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/brightpath/course-scheduler/pkg/middleware/requestid"
)

// @title Schedule Generation API
// @version 1.0.0
// @description Maximal-clique course schedule generation over a weekly time-conflict compatibility graph.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	var cacheClient interface{ Close() error }
	var cacheRepo *repository.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis cache disabled", "error", err)
	} else {
		cacheClient = redisClient
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	authRepo := repository.NewUserRepository(db)
	authSvc := service.NewAuthService(authRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "schedule-generation-api",
		Audience:           []string{"schedule-generation-clients"},
	})
	authHandler := internalhandler.NewAuthHandler(authSvc)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
	authRoutes.POST("/reset-password", authHandler.ResetPassword)
	protectedAuth := authRoutes.Group("")
	protectedAuth.Use(internalmiddleware.JWT(authSvc))
	protectedAuth.POST("/logout", authHandler.Logout)
	protectedAuth.POST("/change-password", authHandler.ChangePassword)
	protectedAuth.GET("/me", authHandler.Me)

	catalogCfg := service.CatalogClientConfig{
		BaseURL:    cfg.Catalog.BaseURL,
		Timeout:    cfg.Catalog.Timeout,
		CacheTTL:   cfg.Catalog.CacheTTL,
		CacheReads: cfg.Catalog.CacheReads,
	}
	var catalogClient *service.CatalogClient
	if cacheRepo != nil {
		catalogClient = service.NewCatalogClient(cacheRepo, catalogCfg, logr)
	} else {
		catalogClient = service.NewCatalogClient(nil, catalogCfg, logr)
	}

	schedulerSvc := service.NewScheduleGeneratorService(catalogClient, nil, logr, service.ScheduleGeneratorConfig{
		MaxSchedules:  cfg.Scheduler.MaxSchedules,
		RequestBudget: cfg.Scheduler.RequestBudget,
	})
	schedulerHandler := internalhandler.NewScheduleGeneratorHandler(schedulerSvc)

	secured := r.Group("/v1/api")
	secured.Use(internalmiddleware.JWT(authSvc))
	secured.POST("/generate_schedule", schedulerHandler.Generate)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
