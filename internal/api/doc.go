// Package api provides the HTTP REST API for TaskTrack.
//
// It exposes registration, login, and per-user task CRUD endpoints.
// Every response uses a uniform JSON envelope: successful responses
// carry {"success": true, "data": ...}, failures carry
// {"success": false, "error": ...} or, for input validation, a
// field-level {"success": false, "errors": [...]} list.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
