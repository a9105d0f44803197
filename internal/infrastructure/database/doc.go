// Package database provides SQLite database connectivity for TaskTrack.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Embedded schema migrations (up/down SQL pairs)
//   - Connection lifecycle and health checks
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration files follow the naming scheme
// YYYYMMDD_HHMMSS_description.up.sql (and .down.sql for rollback)
// and are embedded into the binary by the migrations package.
package database
