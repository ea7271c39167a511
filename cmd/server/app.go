package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver

	"github.com/kdriscoll/mentora-api/internal/config"
	"github.com/kdriscoll/mentora-api/internal/controller"
	"github.com/kdriscoll/mentora-api/internal/events"
	"github.com/kdriscoll/mentora-api/internal/export"
	"github.com/kdriscoll/mentora-api/internal/pipeline"
	"github.com/kdriscoll/mentora-api/internal/platform/gemini"
	"github.com/kdriscoll/mentora-api/internal/platform/logger"
	"github.com/kdriscoll/mentora-api/internal/platform/postgres"
	"github.com/kdriscoll/mentora-api/internal/prompt"
	"github.com/kdriscoll/mentora-api/internal/service"
	"github.com/kdriscoll/mentora-api/internal/service/auth"
	"github.com/kdriscoll/mentora-api/internal/store"
)

// application bundles the wired dependencies the HTTP layer needs.
type application struct {
	config *config.Config
	logger *slog.Logger

	db               *sql.DB
	userStore        store.UserStore
	userService      service.UserService
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	pipeline *pipeline.Pipeline
	exporter *export.Exporter
	registry *controller.Registry
}

// newApplication loads configuration and wires every component, failing
// fast on any misconfiguration.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.ModelName,
		"export_dir", cfg.Export.Dir)

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(db); err != nil {
		closeQuietly(db, log)
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	promptRegistry, err := prompt.NewRegistry()
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to build prompt registry: %w", err)
	}

	generator, err := gemini.NewGenerator(context.Background(), log, cfg.LLM)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	genPipeline, err := pipeline.New(promptRegistry, generator, log)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create generation pipeline: %w", err)
	}

	exporter, err := export.NewExporter(cfg.Export, log)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	notifier := events.NewInMemoryNotifier(log)
	notifier.RegisterHandler(events.NewLogHandler(log))

	userStore := postgres.NewPostgresUserStore(db, 0)
	passwordVerifier := auth.NewBcryptVerifier()

	userService, err := service.NewUserService(db, userStore, passwordVerifier, log)
	if err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           log,
		db:               db,
		userStore:        userStore,
		userService:      userService,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		pipeline:         genPipeline,
		exporter:         exporter,
		registry:         controller.NewRegistry(genPipeline, exporter, notifier, log),
	}, nil
}

// Close releases the application's long-lived resources.
func (app *application) Close() {
	closeQuietly(app.db, app.logger)
}

// openDatabase opens and verifies the PostgreSQL connection pool.
func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db, slog.Default())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
