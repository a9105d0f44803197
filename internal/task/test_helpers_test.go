package task

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the users and tasks
// schema applied. The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use a temp file so WAL mode works (in-memory doesn't support it)
	f, err := os.CreateTemp("", "task-test-*.db")
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

		CREATE TABLE tasks (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'pending',
			user_id     TEXT NOT NULL,
			created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) STRICT;

		CREATE INDEX idx_tasks_user ON tasks(user_id);
	`
	if _, err := db.Exec(schemaSQL); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	return db
}

// seedUser inserts a user row directly and returns its ID. Tasks need
// an owner to satisfy the foreign key.
func seedUser(t *testing.T, db *sql.DB, id, name, email string) string {
	t.Helper()

	_, err := db.Exec(
		"INSERT INTO users (id, name, email, password_hash, role) VALUES (?, ?, ?, 'x', 'user')",
		id, name, email,
	)
	if err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
	return id
}

// seedTask creates a task through the repository and returns it.
func seedTask(t *testing.T, repo *SQLiteRepository, userID, title string) *Task {
	t.Helper()

	task := &Task{
		Title:  title,
		UserID: userID,
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("creating test task %q: %v", title, err)
	}
	return task
}
