package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
)

// testDB creates a temporary SQLite database with the users schema applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use a temp file so WAL mode works (in-memory doesn't support it)
	f, err := os.CreateTemp("", "auth-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schemaSQL := `
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL COLLATE NOCASE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'user',
			created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE UNIQUE INDEX idx_users_email ON users(email);
		CREATE INDEX idx_users_role ON users(role);
	`
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("applying users schema: %v", err)
	}

	return db
}

// testHasher returns a Hasher with a reduced work factor so tests stay fast.
func testHasher() *Hasher {
	return NewHasher(config.PasswordConfig{
		Time:          1,
		MemoryKiB:     8 * 1024,
		Threads:       1,
		MaxConcurrent: 2,
	})
}

// testTokens returns a TokenService with a fixed secret and the given TTL in minutes.
func testTokens(ttlMinutes int) *TokenService {
	return NewTokenService(config.JWTConfig{
		Secret:         "test-secret-key-at-least-32-chars!!!",
		AccessTokenTTL: ttlMinutes,
	})
}

// seedTestUser inserts a test user and returns it.
func seedTestUser(t *testing.T, db *sql.DB, email string, role Role) *User {
	t.Helper()

	hash, err := testHasher().Hash(context.Background(), "test-password")
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	repo := NewUserRepository(db)
	user := &User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}
