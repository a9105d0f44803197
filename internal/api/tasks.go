package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Subramanya2/tasktrack-core/internal/audit"
	"github.com/Subramanya2/tasktrack-core/internal/auth"
	"github.com/Subramanya2/tasktrack-core/internal/task"
)

// createTaskRequest is the request body for POST /tasks. Any owner or
// id field a client sends is simply not decoded; ownership comes from
// the verified identity.
type createTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      task.Status `json:"status"`
}

// updateTaskRequest is the request body for PUT /tasks/{id}. Absent
// fields keep their stored values, so a nil pointer and an explicit
// empty string are distinct.
type updateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *task.Status `json:"status"`
}

// handleListTasks returns the tasks visible to the caller.
//
// Standard users see their own tasks; admins see every task annotated
// with owner details. The scope is fixed before any data access and no
// query parameter can widen it.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	tasks, err := s.taskRepo.List(r.Context(), task.ScopeFor(identity))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeCollection(w, http.StatusOK, len(tasks), tasks)
}

// handleCreateTask creates a task owned by the caller.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input := task.Input{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := input.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	t := &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		UserID:      identity.ID,
	}
	if err := s.taskRepo.Create(r.Context(), t); err != nil {
		s.writeError(w, err)
		return
	}

	s.auditLog(audit.ActionCreate, audit.EntityTask, t.ID, identity.ID, map[string]any{
		"title": t.Title,
	})

	writeData(w, http.StatusCreated, t)
}

// handleGetTask returns a single task.
//
// Existence resolves before ownership: an unknown id is a 404 for
// every caller, and the ownership guard only ever runs against a real
// task.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id := chi.URLParam(r, "id")
	t, err := s.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeErrorMessage(w, http.StatusNotFound, fmt.Sprintf("Task not found with id of %s", id))
			return
		}
		s.writeError(w, err)
		return
	}

	if !auth.CanAccess(identity, t.UserID) {
		writeErrorMessage(w, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to access this task", identity.ID))
		return
	}

	writeData(w, http.StatusOK, t)
}

// handleUpdateTask updates a task's content fields.
//
// The update is a partial patch: only fields present in the body
// change. The owner never changes, whoever performs the update.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id := chi.URLParam(r, "id")
	t, err := s.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeErrorMessage(w, http.StatusNotFound, fmt.Sprintf("Task not found with id of %s", id))
			return
		}
		s.writeError(w, err)
		return
	}

	if !auth.CanAccess(identity, t.UserID) {
		writeErrorMessage(w, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to update this task", identity.ID))
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	input := task.Input{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
	if err := input.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.taskRepo.Update(r.Context(), t); err != nil {
		s.writeError(w, err)
		return
	}

	s.auditLog(audit.ActionUpdate, audit.EntityTask, t.ID, identity.ID, nil)

	writeData(w, http.StatusOK, t)
}

// handleDeleteTask removes a task.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	id := chi.URLParam(r, "id")
	t, err := s.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			writeErrorMessage(w, http.StatusNotFound, fmt.Sprintf("Task not found with id of %s", id))
			return
		}
		s.writeError(w, err)
		return
	}

	if !auth.CanAccess(identity, t.UserID) {
		writeErrorMessage(w, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to delete this task", identity.ID))
		return
	}

	if err := s.taskRepo.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	s.auditLog(audit.ActionDelete, audit.EntityTask, id, identity.ID, map[string]any{
		"title": t.Title,
	})

	writeData(w, http.StatusOK, struct{}{})
}
