package task

import "github.com/Subramanya2/tasktrack-core/internal/auth"

// Scope restricts a listing operation to the subset of tasks an
// identity may see. It is computed once per listing request, before any
// data access.
type Scope struct {
	// OwnerID limits results to tasks owned by this user.
	// Empty means unrestricted.
	OwnerID string

	// AnnotateOwner asks the repository to join each task with its
	// owner's name and email. Only set on the unrestricted branch.
	AnnotateOwner bool
}

// Unrestricted reports whether the scope places no owner filter.
func (s Scope) Unrestricted() bool {
	return s.OwnerID == ""
}

// ScopeFor derives the listing scope from a verified identity.
//
// Administrators list every task, annotated with owner details;
// standard users list only their own. The switch is exhaustive over the
// closed Role set, and an unknown role scopes to nothing visible
// (filter by its own id, which owns no tasks it couldn't see anyway).
func ScopeFor(identity auth.Identity) Scope {
	switch identity.Role {
	case auth.RoleAdmin:
		return Scope{AnnotateOwner: true}
	case auth.RoleUser:
		return Scope{OwnerID: identity.ID}
	default:
		return Scope{OwnerID: identity.ID}
	}
}
