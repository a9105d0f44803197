// TaskTrack - multi-user task tracker
//
// This is the main entry point for the TaskTrack API server. It wires
// the configuration, database, auth services, and HTTP server, seeds
// the first admin account on an empty database, and runs until an
// interrupt signal arrives.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/Subramanya2/tasktrack-core/migrations"

	"github.com/Subramanya2/tasktrack-core/internal/api"
	"github.com/Subramanya2/tasktrack-core/internal/audit"
	"github.com/Subramanya2/tasktrack-core/internal/auth"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/database"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/logging"
	"github.com/Subramanya2/tasktrack-core/internal/task"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Local .env is optional; environment variables win either way.
	//nolint:errcheck // missing .env file is fine
	godotenv.Load()

	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting TaskTrack",
		"version", version,
		"commit", commit,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open database
	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Domain services
	userRepo := auth.NewUserRepository(db.DB)
	taskRepo := task.NewRepository(db.DB)
	auditRepo := audit.NewRepository(db.DB)
	hasher := auth.NewHasher(cfg.Security.Password)
	tokens := auth.NewTokenService(cfg.Security.JWT)

	// Seed the first admin on an empty database. The generated
	// password is logged once and never stored in the clear.
	if _, seedErr := auth.SeedAdmin(ctx, userRepo, hasher, log.Logger); seedErr != nil {
		return fmt.Errorf("seeding admin account: %w", seedErr)
	}

	// Start HTTP server
	server, err := api.New(api.Deps{
		Config:    cfg.Server,
		Logger:    log,
		UserRepo:  userRepo,
		TaskRepo:  taskRepo,
		AuditRepo: auditRepo,
		Hasher:    hasher,
		Tokens:    tokens,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses TASKTRACK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("TASKTRACK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
