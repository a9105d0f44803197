package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Subramanya2/tasktrack-core/internal/infrastructure/config"
)

// Claims extends the JWT registered claims with the account role.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// TokenService issues and verifies signed bearer tokens. The signing
// key and TTL are fixed at construction and never consulted from
// ambient globals. Tokens are validated by signature and expiry only
// (no storage lookup), so possession proves authorisation until expiry
// or key rotation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService from the JWT section of the config.
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.AccessTokenTTL) * time.Minute,
	}
}

// Issue creates a signed HS256 token for a user. The expiry is a fixed
// TTL from issuance, not sliding.
func (ts *TokenService) Issue(user *User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
			ID:        uuid.NewString(),
		},
		Role: user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the identity it asserts.
//
// Failures classify into exactly one of the sentinel errors:
// ErrTokenExpired for a structurally valid token past its expiry,
// ErrTokenSignature for a bad signature, ErrTokenMalformed for
// everything that doesn't parse as a token at all.
func (ts *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return ts.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenMalformed
	}

	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}
	if !IsValidRole(claims.Role) {
		return Identity{}, fmt.Errorf("%w: unknown role", ErrTokenMalformed)
	}

	return Identity{ID: claims.Subject, Role: claims.Role}, nil
}

// classifyTokenError maps jwt library failures onto the closed error
// taxonomy. Expiry is checked first: an expired token must always
// surface as expired, never as an unspecified validation failure.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
