package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role represents an authorisation tier in the system.
// It is a closed enumeration: every consumer must handle both variants.
type Role string

const (
	// RoleUser is a standard account. Sees and manages only its own tasks.
	RoleUser Role = "user"

	// RoleAdmin sees and manages every user's tasks. Admin accounts are
	// created only by first-boot seeding, never through an endpoint.
	RoleAdmin Role = "admin"
)

// ValidRoles is the set of valid account roles.
var ValidRoles = []Role{RoleUser, RoleAdmin}

// IsValidRole returns true if the role is one of the closed set.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the verified result of token resolution: who is making
// the request and at what tier. It is attached to the request context
// by the auth middleware and read-only for the rest of the pipeline.
type Identity struct {
	ID   string
	Role Role
}

// NormalizeEmail lowercases and trims an email address so that
// comparisons and storage are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Sentinel errors for auth operations.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a login failure never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")

	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token has expired")

	ErrForbidden = errors.New("insufficient permissions")
)

// FieldError describes a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one entry per violated field, not just the
// first. Callers surface all entries to the client in one response.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
