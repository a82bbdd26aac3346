package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/config"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/srs"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/platform/logger"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/platform/postgres"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/scheduler"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/auth"
	"github.com/BoneTheDeveloper/learning-newword-project/internal/service/review"
)

// application holds the long-lived dependencies of the server process.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	router    http.Handler
	scheduler *scheduler.Scheduler
}

// newApplication loads configuration and builds the full dependency graph:
// database connection, migrations, stores, services, handlers and the
// background scheduler.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeQuietly(db, appLogger)
		return nil, err
	}

	// Stores
	cardStore := postgres.NewPostgresCardStore(db, appLogger)
	stateStore := postgres.NewPostgresSchedulingStateStore(db, appLogger)
	summaryStore := postgres.NewPostgresStudySessionStore(db, appLogger)

	// Services
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	reviewService := review.NewReviewService(
		db,
		cardStore,
		stateStore,
		summaryStore,
		review.NewInMemorySessionStore(),
		srs.NewDefaultService(),
		review.Options{
			DueLimit:            cfg.Review.DueLimit,
			UpcomingHorizonDays: cfg.Review.UpcomingHorizonDays,
		},
		appLogger,
	)

	sched, err := scheduler.New(stateStore, cfg.Scheduler.DailySummaryTime, appLogger)
	if err != nil {
		closeQuietly(db, appLogger)
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	app := &application{
		config:    cfg,
		logger:    appLogger,
		db:        db,
		scheduler: sched,
	}
	app.router = app.setupRouter(jwtService, reviewService)

	return app, nil
}

// run starts the background scheduler and the HTTP server, then blocks
// until the server shuts down.
func (app *application) run() error {
	app.scheduler.Start()
	return app.startHTTPServer(context.Background())
}

// cleanup releases resources held by the application. Called after the HTTP
// server has stopped accepting requests.
func (app *application) cleanup() {
	app.scheduler.Stop()
	closeQuietly(app.db, app.logger)
}

// setupDatabase opens the connection pool and verifies connectivity.
func setupDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")
	return db, nil
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close database connection", slog.String("error", err.Error()))
	}
}
