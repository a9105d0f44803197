// Package config handles loading and validating TaskTrack configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (TASKTRACK_*)
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (the JWT secret above all) should be set via
//     environment variables, not committed YAML
//   - The config file should have restricted permissions (0600)
//   - Startup fails hard on a missing or short JWT secret
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
