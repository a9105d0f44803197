package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Subramanya2/tasktrack-core/internal/auth"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/logging"
	"github.com/Subramanya2/tasktrack-core/internal/task"
)

// setupTestDB creates a temporary SQLite database with the users and
// tasks schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp("", "api-test-*.db")
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

// testServer creates a fully wired server backed by a temp database.
// The HTTP listener is never started; tests drive the router directly.
func testServer(t *testing.T) (*Server, http.Handler, *sql.DB) {
	t.Helper()

	db := setupTestDB(t)

	hasher := auth.NewHasher(config.PasswordConfig{
		Time:          1,
		MemoryKiB:     8 * 1024,
		Threads:       1,
		MaxConcurrent: 2,
	})
	tokens := auth.NewTokenService(config.JWTConfig{
		Secret:         "test-secret-key-at-least-32-chars!!!",
		AccessTokenTTL: 15,
	})

	srv, err := New(Deps{
		Config:   config.ServerConfig{},
		Logger:   logging.Default(),
		UserRepo: auth.NewUserRepository(db),
		TaskRepo: task.NewRepository(db),
		Hasher:   hasher,
		Tokens:   tokens,
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("creating test server: %v", err)
	}

	return srv, srv.buildRouter(), db
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the recorded response.
func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshalling request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope decodes a response body into a generic envelope map.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

// registerUser registers a user through the API and returns the token.
func registerUser(t *testing.T, handler http.Handler, name, email, password string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}

	out := decodeEnvelope(t, rec)
	token, _ := out["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response %s", email, rec.Body.String())
	}
	return token
}

// promoteToAdmin flips a user's stored role and returns a fresh token
// carrying the admin role. The earlier token stays valid but keeps its
// original role claim.
func promoteToAdmin(t *testing.T, srv *Server, db *sql.DB, email string) string {
	t.Helper()

	if _, err := db.Exec("UPDATE users SET role = 'admin' WHERE email = ?", email); err != nil {
		t.Fatalf("promoting %s: %v", email, err)
	}

	user, err := srv.userRepo.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("looking up %s: %v", email, err)
	}

	token, err := srv.tokens.Issue(user)
	if err != nil {
		t.Fatalf("issuing admin token: %v", err)
	}
	return token
}
