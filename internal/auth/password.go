package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
)

// Argon2id output sizes. The work factor (time/memory/threads) comes
// from configuration; these two are fixed.
const (
	argonKeyLen  = 32 // output hash length
	argonSaltLen = 16 // salt length
)

// Hasher performs Argon2id password hashing with a configured work
// factor. The parameters are set once at startup and read-only after.
//
// Each hash pins MemoryKiB of RAM for its duration, so a weighted
// semaphore caps how many run at once; waiting goroutines queue instead
// of stacking allocations. Requests that don't hash are unaffected.
type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	sem     *semaphore.Weighted
}

// NewHasher creates a Hasher from the password section of the config.
func NewHasher(cfg config.PasswordConfig) *Hasher {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Hasher{
		time:    cfg.Time,
		memory:  cfg.MemoryKiB,
		threads: cfg.Threads,
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
}

// Hash hashes a plaintext password using Argon2id and returns it in PHC
// string format: $argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>
//
// The salt is random per call, so the same plaintext never produces the
// same digest twice.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquiring hash slot: %w", err)
	}
	defer h.sem.Release(1)

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify checks a plaintext password against an Argon2id PHC hash
// string. A malformed stored digest is "no match", not an error: login
// must fail closed on corrupt data rather than crash the request.
func (h *Hasher) Verify(ctx context.Context, password, encodedHash string) bool {
	salt, hash, params, err := decodePHC(encodedHash)
	if err != nil {
		return false
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	candidate := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(hash))) //nolint:gosec // hash length always fits uint32

	return subtle.ConstantTimeCompare(hash, candidate) == 1
}

type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

// phcParts is the number of $-delimited segments in a PHC string.
const phcParts = 6

// decodePHC parses an Argon2id PHC string into its components.
// Verification uses the parameters embedded in the digest, so hashes
// created under an older work factor still verify after a config change.
func decodePHC(encoded string) (salt, hash []byte, params argonParams, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != phcParts {
		return nil, nil, params, fmt.Errorf("invalid PHC hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil { //nolint:govet // shadow: err re-declared in nested scope
		return nil, nil, params, fmt.Errorf("parsing version: %w", err)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil { //nolint:govet // shadow: err re-declared in nested scope
		return nil, nil, params, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("decoding salt: %w", err)
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("decoding hash: %w", err)
	}

	return salt, hash, params, nil
}
