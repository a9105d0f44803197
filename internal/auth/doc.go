// Package auth provides authentication and authorisation for TaskTrack.
//
// It implements a two-tier role model (user → admin) with:
//   - Argon2id password hashing (PHC string format, random per-hash salt)
//   - Signed HS256 bearer tokens with a fixed time-to-live
//   - Registration input validation with per-field error reporting
//   - An ownership guard deciding whether an identity may act on a task
//
// The package holds no request-spanning mutable state: the signing key
// and hashing work factor are read-only after startup, and every
// decision function is a pure per-request computation. There is no
// server-side token revocation; tokens die by expiry or key rotation.
package auth
