package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fastcrm/fastcrm/config"
	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/handler"
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/fastcrm/fastcrm/internal/repository"
	"github.com/fastcrm/fastcrm/internal/router"
	"github.com/fastcrm/fastcrm/internal/service"
	"github.com/fastcrm/fastcrm/pkg/database"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/fastcrm/fastcrm/pkg/redis"
	"github.com/fastcrm/fastcrm/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	if err := logger.InitLogger(cfg.App.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("starting",
		zap.String("service", constants.AppName),
		zap.String("version", constants.AppVersion),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := validation.RegisterCustomValidators(); err != nil {
		log.Fatal("failed to register validators", zap.Error(err))
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("failed to seed database", zap.Error(err))
	}

	cache, err := redis.NewClient(redis.Config{
		Enabled:  cfg.Redis.Enabled,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// Cache is optional: log and continue without it.
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
		cache, _ = redis.NewClient(redis.Config{Enabled: false})
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.Error("failed to close redis", zap.Error(err))
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	clientRepo := repository.NewOAuth2ClientRepository(db)

	// Services
	jwtService := service.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, tokenRepo, clientRepo, jwtService)
	userService := service.NewUserService(userRepo, tokenRepo, customerRepo)
	customerService := service.NewCustomerService(customerRepo)
	noteService := service.NewNoteService(noteRepo, customerRepo)
	statsService := service.NewStatsService(userRepo, customerRepo, noteRepo, tokenRepo, cache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	customerHandler := handler.NewCustomerHandler(customerService, noteService)
	adminHandler := handler.NewAdminHandler(userService, customerService, statsService)
	healthHandler := handler.NewHealthHandler(db, cache)

	authMW := middleware.NewAuthMiddleware(jwtService, userRepo)

	engine := router.NewRouter(
		authHandler,
		customerHandler,
		adminHandler,
		healthHandler,
		authMW,
		router.Options{
			AllowedOrigins: cfg.App.AllowedOrigins,
			AuthRateLimit:  cfg.RateLimit.AuthMaxRequests,
			AuthRateWindow: cfg.RateLimit.AuthWindow,
			StaticDir:      cfg.App.StaticDir,
		},
	).Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("stopped")
}
