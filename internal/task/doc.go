// Package task provides the task domain model and persistence for TaskTrack.
//
// Every task is owned by exactly one user, set from the authenticated
// identity at creation time; client-supplied owner fields are never
// honoured. The scoping policy decides which subset of tasks a listing
// returns: standard users see only their own, administrators see all
// tasks annotated with the owner's name and email (a lookup join the
// repository performs only on the unrestricted branch).
package task
