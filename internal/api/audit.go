package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Subramanya2/tasktrack-core/internal/audit"
	"github.com/Subramanya2/tasktrack-core/internal/auth"
)

// auditChanSize is the buffer size for the async audit channel.
// Entries beyond this are dropped (best-effort) to avoid back-pressure on requests.
const auditChanSize = 256

// auditLog enqueues an audit entry for asynchronous write (best-effort).
// If the channel is full the entry is dropped and a warning is logged.
func (s *Server) auditLog(action, entityType, entityID, userID string, details map[string]any) {
	if s.auditRepo == nil || s.auditCh == nil {
		return
	}

	entry := &audit.Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Details:    details,
	}

	select {
	case s.auditCh <- entry:
	default:
		s.logger.Warn("audit channel full, dropping entry",
			"action", action,
			"entity_type", entityType,
		)
	}
}

// drainAudit reads entries from the audit channel and writes them serially.
// This avoids unbounded goroutine creation and is kinder to SQLite's serial write model.
// It runs until the context is cancelled, then drains remaining entries.
func (s *Server) drainAudit(ctx context.Context) {
	for {
		select {
		case entry := <-s.auditCh:
			if err := s.auditRepo.Create(context.Background(), entry); err != nil {
				s.logger.Error("audit write failed",
					"action", entry.Action,
					"entity_type", entry.EntityType,
					"error", err,
				)
			}
		case <-ctx.Done():
			// Drain remaining entries before exiting
			for {
				select {
				case entry := <-s.auditCh:
					if err := s.auditRepo.Create(context.Background(), entry); err != nil {
						s.logger.Error("audit write failed during shutdown",
							"action", entry.Action,
							"error", err,
						)
					}
				default:
					return
				}
			}
		}
	}
}

// handleListAuditEntries returns paginated audit entries with optional filters.
// Admin only.
//
// Query parameters:
//   - action: filter by action (register, login, create, update, delete)
//   - entity_type: filter by entity type (user, task)
//   - entity_id: filter by specific entity ID
//   - user_id: filter by acting user
//   - limit: max results (default 50, max 200)
//   - offset: pagination offset
func (s *Server) handleListAuditEntries(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}
	if identity.Role != auth.RoleAdmin {
		writeErrorMessage(w, http.StatusForbidden,
			fmt.Sprintf("User %s is not authorized to access the audit trail", identity.ID))
		return
	}

	if s.auditRepo == nil {
		writeErrorMessage(w, http.StatusInternalServerError, "Audit trail not configured")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		UserID:     q.Get("user_id"),
	}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	result, err := s.auditRepo.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, result)
}
