package task

import (
	"context"
	"errors"
	"testing"
)

func TestRepositoryCreate(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := seedUser(t, db, "usr-aaaa1111", "Alice", "alice@example.com")

	task := &Task{
		Title:       "Write quarterly report",
		Description: "Draft due Friday",
		UserID:      owner,
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.ID == "" {
		t.Error("expected generated ID")
	}
	if task.Status != StatusPending {
		t.Errorf("status = %q, want %q", task.Status, StatusPending)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != task.Title || got.Description != task.Description || got.UserID != owner {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
}

func TestRepositoryCreateExplicitStatus(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := seedUser(t, db, "usr-aaaa1111", "Alice", "alice@example.com")

	task := &Task{Title: "Ship release", Status: StatusInProgress, UserID: owner}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusInProgress {
		t.Errorf("status = %q, want %q", got.Status, StatusInProgress)
	}
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)

	_, err := repo.GetByID(context.Background(), "tsk-missing1")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestRepositoryListScoped(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	alice := seedUser(t, db, "usr-aaaa1111", "Alice", "alice@example.com")
	bob := seedUser(t, db, "usr-bbbb2222", "Bob", "bob@example.com")

	seedTask(t, repo, alice, "Alice task one")
	seedTask(t, repo, alice, "Alice task two")
	seedTask(t, repo, bob, "Bob task")

	tasks, err := repo.List(context.Background(), Scope{OwnerID: alice})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != alice {
			t.Errorf("scoped listing leaked task %s owned by %s", task.ID, task.UserID)
		}
		if task.Owner != nil {
			t.Errorf("scoped listing annotated owner on task %s", task.ID)
		}
	}
}

func TestRepositoryListUnrestrictedWithOwners(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	alice := seedUser(t, db, "usr-aaaa1111", "Alice", "alice@example.com")
	bob := seedUser(t, db, "usr-bbbb2222", "Bob", "bob@example.com")

	seedTask(t, repo, alice, "Alice task")
	seedTask(t, repo, bob, "Bob task")

	tasks, err := repo.List(context.Background(), Scope{AnnotateOwner: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}

	byOwner := map[string]*OwnerInfo{}
	for _, task := range tasks {
		if task.Owner == nil {
			t.Fatalf("task %s missing owner annotation", task.ID)
		}
		byOwner[task.UserID] = task.Owner
	}
	if got := byOwner[alice]; got.Name != "Alice" || got.Email != "alice@example.com" {
		t.Errorf("alice annotation = %+v", got)
	}
	if got := byOwner[bob]; got.Name != "Bob" || got.Email != "bob@example.com" {
		t.Errorf("bob annotation = %+v", got)
	}
}

func TestRepositoryListEmpty(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)

	tasks, err := repo.List(context.Background(), Scope{OwnerID: "usr-nobody99"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if tasks == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(tasks) != 0 {
		t.Errorf("len = %d, want 0", len(tasks))
	}
}

func TestRepositoryUpdate(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := seedUser(t, db, "usr-aaaa1111", "Alice", "alice@example.com")

	task := seedTask(t, repo, owner, "Original title")
	task.Title = "Revised title"
	task.Description = "Now with details"
	task.Status = StatusCompleted

	if err := repo.Update(context.Background(), task); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Revised title" || got.Description != "Now with details" || got.Status != StatusCompleted {
		t.Errorf("update not persisted: %+v", got)
	}
	if got.UserID != owner {
		t.Errorf("update changed owner: %s", got.UserID)
	}
}

func TestRepositoryUpdateNotFound(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)

	err := repo.Update(context.Background(), &Task{ID: "tsk-missing1", Title: "x", Status: StatusPending})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := seedUser(t, db, "usr-aaaa1111", "Alice", "alice@example.com")

	task := seedTask(t, repo, owner, "Doomed task")
	if err := repo.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after delete, got %v", err)
	}

	if err := repo.Delete(context.Background(), task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}
