package auth

// CanAccess is the ownership guard: it decides whether an identity may
// read, update, or delete a resource owned by ownerID.
//
// Admins may act on any resource; standard users only on their own.
// The switch is exhaustive over the closed Role set; an unknown role
// (which Verify never produces) denies.
//
// Callers must resolve "resource does not exist" before consulting this
// guard, so a denial is always a 403 for a real resource and never
// leaks more about existence than the 404 path already does.
func CanAccess(identity Identity, ownerID string) bool {
	switch identity.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return identity.ID == ownerID
	default:
		return false
	}
}
