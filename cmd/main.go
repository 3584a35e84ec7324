package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/lp-esports/sports-day-system/config"
	"github.com/lp-esports/sports-day-system/db"
	"github.com/lp-esports/sports-day-system/handlers"
	"github.com/lp-esports/sports-day-system/live"
	"github.com/lp-esports/sports-day-system/repositories"
	api "github.com/lp-esports/sports-day-system/routes"
	"github.com/lp-esports/sports-day-system/services"
	"github.com/lp-esports/sports-day-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, dialect, err := db.Connect(cfg.DatabaseURL, cfg.SQLitePath, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established", slog.String("dialect", dialect.Name()))

	if err := db.Migrate(dbConn, dialect); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	var uploader storage.FileUploader
	switch cfg.UploadBackend {
	case config.UploadBackendR2:
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
	default:
		uploader, err = storage.NewLocalUploader(cfg.UploadDir)
	}
	if err != nil {
		logger.Error("failed to initialize file uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("file uploader initialized", slog.String("backend", cfg.UploadBackend))

	wsHub := live.NewHub(logger)
	go wsHub.Run()

	classRepo := repositories.NewSQLClassRepository(dbConn, dialect)
	sportRepo := repositories.NewSQLSportRepository(dbConn, dialect)
	studentRepo := repositories.NewSQLStudentRepository(dbConn, dialect)
	resultRepo := repositories.NewSQLResultRepository(dbConn, dialect)
	leaderboardRepo := repositories.NewSQLLeaderboardRepository(dbConn, dialect)

	verifier := &services.EnvCredentialVerifier{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	}

	authService := services.NewAuthService(verifier)
	classService := services.NewClassService(classRepo)
	sportService := services.NewSportService(sportRepo)
	studentService := services.NewStudentService(studentRepo)
	resultService := services.NewResultService(dbConn, resultRepo, uploader, wsHub, logger)
	leaderboardService := services.NewLeaderboardService(leaderboardRepo, uploader)
	importService := services.NewImportService(dbConn, classRepo, studentRepo, logger)

	routeHandlers := api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Class:       handlers.NewClassHandler(classService),
		Sport:       handlers.NewSportHandler(sportService),
		Student:     handlers.NewStudentHandler(studentService),
		Result:      handlers.NewResultHandler(resultService),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService),
		Import:      handlers.NewImportHandler(importService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub),
	}

	staticDir := ""
	if cfg.UploadBackend == config.UploadBackendLocal {
		staticDir = cfg.UploadDir
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, routeHandlers, cfg.JWTSecretKey, staticDir)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
