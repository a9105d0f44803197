package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// seedPasswordBytes is the number of random bytes for the seed admin password.
const seedPasswordBytes = 16

// SeedAdmin creates the initial administrator account on first boot if
// no users exist. This is the only way an admin role comes into being:
// registration always produces standard accounts, and no endpoint
// changes roles.
//
// The generated password is logged once and must be changed immediately.
// Returns the generated password (empty string if seeding was skipped).
func SeedAdmin(ctx context.Context, userRepo UserRepository, hasher *Hasher, logger *slog.Logger) (string, error) {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("checking user count: %w", err)
	}

	if count > 0 {
		logger.Info("users exist, skipping admin seed")
		return "", nil
	}

	passwordBytes := make([]byte, seedPasswordBytes)
	if _, err := rand.Read(passwordBytes); err != nil { //nolint:govet // shadow: err re-declared in nested scope
		return "", fmt.Errorf("generating seed password: %w", err)
	}
	password := hex.EncodeToString(passwordBytes)

	hash, err := hasher.Hash(ctx, password)
	if err != nil {
		return "", fmt.Errorf("hashing seed password: %w", err)
	}

	admin := &User{
		Name:         "Administrator",
		Email:        "admin@localhost",
		PasswordHash: hash,
		Role:         RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return "", fmt.Errorf("creating seed admin: %w", err)
	}

	logger.Warn("seed admin account created",
		"email", admin.Email,
		"password", password,
		"action_required", "change this password immediately",
	)

	return password, nil
}
