package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Subramanya2/tasktrack-core/internal/audit"
	"github.com/Subramanya2/tasktrack-core/internal/auth"
)

// registerRequest is the request body for POST /auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the envelope for endpoints that issue a token.
type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// handleRegister creates a new account and returns a signed token.
//
// All validation failures are reported together as field errors. A
// duplicate email reports as a single generic error so registration
// does not become an account-probing oracle beyond what the 400 itself
// reveals.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input := auth.RegistrationInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := auth.ValidateRegistration(input); err != nil {
		s.writeError(w, err)
		return
	}

	hash, err := s.hasher.Hash(r.Context(), req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	user := &auth.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	}
	if err := s.userRepo.Create(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeErrorMessage(w, http.StatusBadRequest, "Email already registered")
			return
		}
		s.writeError(w, err)
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.auditLog(audit.ActionRegister, audit.EntityUser, user.ID, user.ID, nil)

	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

// handleLogin verifies credentials and returns a signed token.
//
// Unknown email and wrong password take the same response path: a
// uniform 401 that does not disclose whether the account exists.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	user, err := s.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeErrorMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.writeError(w, err)
		return
	}

	if !s.hasher.Verify(r.Context(), req.Password, user.PasswordHash) {
		writeErrorMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.auditLog(audit.ActionLogin, audit.EntityUser, user.ID, user.ID, nil)

	writeJSON(w, http.StatusOK, tokenResponse{Success: true, Token: token})
}

// handleMe returns the account behind the presented token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	user, err := s.userRepo.GetByID(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// Token outlived the account.
			writeErrorMessage(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		s.writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, user)
}
