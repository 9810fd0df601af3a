package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riwijobs/internal/app"
	"riwijobs/internal/config"
	"riwijobs/internal/database"
	"riwijobs/internal/domain/user"
	apphttp "riwijobs/internal/http"
	"riwijobs/internal/http/handlers"
	httpmw "riwijobs/internal/http/middleware"
	"riwijobs/internal/observability"
	"riwijobs/internal/repository/postgres"
	"riwijobs/internal/security"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	vacancyRepo := postgres.NewVacancyRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, analyticsRepo, jwtProvider, cfg.AccessTokenTTL)
	userService := app.NewUserService(userRepo, analyticsRepo)
	vacancyService := app.NewVacancyService(vacancyRepo, applicationRepo, analyticsRepo)
	applicationService := app.NewApplicationService(applicationRepo, vacancyRepo, analyticsRepo)
	analyticsService := app.NewAnalyticsService(analyticsRepo)

	seedAdmin(userRepo, cfg, logger)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if redisClient := database.NewRedis(cfg.RedisURL); redisClient != nil {
		limiter = httpmw.NewRedisLimiter(redisClient)
		defer redisClient.Close()
	}

	metrics := observability.NewMetrics()
	authHandler := handlers.NewAuthHandler(authService, limiter)
	userHandler := handlers.NewUserHandler(userService)
	vacancyHandler := handlers.NewVacancyHandler(vacancyService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, limiter)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		VacancyHandler:     vacancyHandler,
		ApplicationHandler: applicationHandler,
		AnalyticsHandler:   analyticsHandler,
		AuthMiddleware:     authMiddleware,
		Logger:             logger,
		Metrics:            metrics,
		APIKey:             cfg.APIKey,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the bootstrap admin account on first start. Skipped when
// the seed credentials are absent or the email is already registered.
func seedAdmin(users user.Repository, cfg *config.Config, logger *zap.Logger) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if existing, err := users.GetByEmail(ctx, cfg.SeedAdminEmail); err == nil && existing != nil {
		return
	}
	hash, err := security.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		logger.Warn("seed admin skipped", zap.Error(err))
		return
	}
	seeded := user.User{
		Name:         "Administrator",
		Email:        cfg.SeedAdminEmail,
		Role:         user.RoleAdmin,
		PasswordHash: hash,
	}
	if _, err := users.Create(ctx, seeded); err != nil {
		logger.Warn("seed admin skipped", zap.Error(err))
		return
	}
	logger.Info("seed admin created", zap.String("email", cfg.SeedAdminEmail))
}
