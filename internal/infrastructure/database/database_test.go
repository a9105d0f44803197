package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
)

func testConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	return config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}
}

func TestOpen(t *testing.T) {
	cfg := testConfig(t)

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != cfg.Path {
		t.Errorf("Path() = %q, want %q", db.Path(), cfg.Path)
	}

	// Database file should exist
	if _, err := os.Stat(cfg.Path); err != nil {
		t.Errorf("database file should exist: %v", err)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "nested", "dir", "test.db"),
		BusyTimeout: 5,
	}

	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()
}

func TestHealthCheck(t *testing.T) {
	db, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestClose(t *testing.T) {
	db, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	// Double close on a nil inner DB is safe
	db.DB = nil
	if err := db.Close(); err != nil {
		t.Errorf("Close() on nil DB error = %v", err)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	db, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var enabled int
	if err := db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("querying foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("foreign keys should be enabled")
	}
}
