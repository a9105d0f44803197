package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for TaskTrack.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig contains HTTP API server settings.
type ServerConfig struct {
	Host     string              `yaml:"host"`
	Port     int                 `yaml:"port"`
	Timeouts ServerTimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig          `yaml:"cors"`
}

// ServerTimeoutConfig contains HTTP timeout settings in seconds.
type ServerTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT      JWTConfig      `yaml:"jwt"`
	Password PasswordConfig `yaml:"password"`
}

// JWTConfig contains JWT token settings.
// The secret signs every access token; the TTL is fixed at issuance
// (no sliding expiry).
type JWTConfig struct {
	Secret         string `yaml:"secret"`
	AccessTokenTTL int    `yaml:"access_token_ttl"` // minutes
}

// PasswordConfig contains Argon2id work-factor settings.
// The zero value is replaced by defaults in defaultConfig; operators
// tune these only on constrained hardware.
type PasswordConfig struct {
	Time          uint32 `yaml:"time"`           // iterations
	MemoryKiB     uint32 `yaml:"memory_kib"`     // memory cost in KiB
	Threads       uint8  `yaml:"threads"`        // lanes
	MaxConcurrent int64  `yaml:"max_concurrent"` // concurrent hash operations
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: TASKTRACK_SECTION_KEY
// For example: TASKTRACK_DATABASE_PATH, TASKTRACK_JWT_SECRET
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
			Timeouts: ServerTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/tasktrack.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				AccessTokenTTL: 30,
			},
			Password: PasswordConfig{
				Time:          3,
				MemoryKiB:     64 * 1024,
				Threads:       1,
				MaxConcurrent: 4,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: TASKTRACK_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKTRACK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TASKTRACK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TASKTRACK_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TASKTRACK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Security - JWT secret (IMPORTANT: always set in production)
	if v := os.Getenv("TASKTRACK_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
	if v := os.Getenv("TASKTRACK_JWT_TTL_MINUTES"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.Security.JWT.AccessTokenTTL = ttl
		}
	}
}

// minJWTSecretLength is the minimum accepted signing key length.
// Shorter keys make HS256 tokens practical to brute-force offline.
const minJWTSecretLength = 32

// Validate checks the configuration for errors and security issues.
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	// JWT secret is REQUIRED. An empty or weak secret lets anyone
	// forge identity tokens for any account, admin included.
	if c.Security.JWT.Secret == "" {
		errs = append(errs, "security.jwt.secret is required (set TASKTRACK_JWT_SECRET environment variable)")
	} else if len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters")
	}

	if c.Security.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, "security.jwt.access_token_ttl must be positive")
	}

	if c.Security.Password.Time == 0 || c.Security.Password.MemoryKiB == 0 {
		errs = append(errs, "security.password time and memory_kib must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// AccessTokenTTL returns the configured token lifetime as a Duration.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Security.JWT.AccessTokenTTL) * time.Minute
}

// GetReadTimeout returns the server read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the server write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the server idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.Server.Timeouts.Idle) * time.Second
}
