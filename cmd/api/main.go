// Package main is the entry point for the PayTrack API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/paytrack/backend/config"
	"github.com/paytrack/backend/internal/infra/cache"
	"github.com/paytrack/backend/internal/infra/db"
	"github.com/paytrack/backend/internal/infra/dependency"
	"github.com/paytrack/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting PayTrack API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var gormDB *gorm.DB

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
	} else {
		// Run database migrations
		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.CategoryModel{},
			&model.TransactionModel{},
			&model.PayScheduleModel{},
			&model.ReportSnapshotModel{},
			&model.EmailQueueModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		gormDB = database.DB()
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize Redis connection. The report cache is optional; analyses run
	// uncached when Redis is unavailable.
	var redisClient *redis.Client

	redisConn, err := cache.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, running without report cache",
			"error", err,
		)
	} else {
		redisClient = redisConn.Client()
		defer func() {
			if err := redisConn.Close(); err != nil {
				slog.Error("Failed to close Redis connection", "error", err)
			}
		}()
	}

	// Wire dependencies
	injector, err := dependency.NewInjector(cfg, gormDB, redisClient)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Start email worker in the background
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var workerWG sync.WaitGroup
	if injector.EmailWorker != nil {
		workerWG.Add(1)
		go func() {
			defer workerWG.Done()
			injector.EmailWorker.Start(workerCtx)
		}()
	} else {
		slog.Info("Email worker not started",
			"worker_enabled", cfg.Email.WorkerEnabled,
			"api_key_configured", cfg.Email.ResendAPIKey != "",
		)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Stop the email worker and wait for the in-flight batch
	stopWorker()
	workerWG.Wait()

	slog.Info("Server exited properly")
}
