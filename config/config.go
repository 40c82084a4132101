// Package config loads server settings from the environment, applying
// defaults and failing fast on missing or weak required values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const minSecretLength = 32

var (
	ErrDatabaseDSNRequired = errors.New("DATABASE_URL is required")
	ErrSecretRequired      = errors.New("AUTH_SECRET is required")
	ErrSecretTooShort      = errors.New("AUTH_SECRET must be at least 32 bytes")
	ErrS3Incomplete        = errors.New("S3_BUCKET requires S3_ACCESS_KEY and S3_SECRET_KEY")
)

// Config holds runtime settings for the Knowtasks server.
type Config struct {
	Addr        string
	DatabaseDSN string

	AuthSecret string
	TokenTTL   time.Duration

	LoginMaxAttempts int
	LoginWindow      time.Duration

	// RedisAddr selects the Redis-backed login throttle when non-empty;
	// otherwise the in-process throttle is used.
	RedisAddr string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// DevPrincipalID and DevPrincipalRole come from KNOWTASKS_DEV_PRINCIPAL
	// ("<id>" or "<id>:<role>"). Empty means the bypass stays disabled.
	DevPrincipalID   string
	DevPrincipalRole string
}

// S3Enabled reports whether object storage settings were provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

func defaults() *Config {
	return &Config{
		Addr:             ":8080",
		TokenTTL:         24 * time.Hour,
		LoginMaxAttempts: 5,
		LoginWindow:      15 * time.Minute,
		S3Region:         "us-east-1",
	}
}

// Load builds a Config from the process environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := defaults()

	if v := getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.DatabaseDSN = getenv("DATABASE_URL")
	cfg.AuthSecret = getenv("AUTH_SECRET")

	if v := getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}
	if v := getenv("LOGIN_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing LOGIN_MAX_ATTEMPTS: %w", err)
		}
		cfg.LoginMaxAttempts = n
	}
	if v := getenv("LOGIN_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing LOGIN_WINDOW: %w", err)
		}
		cfg.LoginWindow = d
	}

	cfg.RedisAddr = getenv("REDIS_ADDR")

	cfg.S3Bucket = getenv("S3_BUCKET")
	if v := getenv("S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	cfg.S3BaseEndpoint = getenv("S3_ENDPOINT")
	cfg.S3AccessKey = getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = getenv("S3_SECRET_KEY")

	if v := getenv("KNOWTASKS_DEV_PRINCIPAL"); v != "" {
		id, role, ok := strings.Cut(v, ":")
		cfg.DevPrincipalID = id
		cfg.DevPrincipalRole = "superadmin"
		if ok && role != "" {
			cfg.DevPrincipalRole = role
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseDSN == "" {
		return ErrDatabaseDSNRequired
	}
	if c.AuthSecret == "" {
		return ErrSecretRequired
	}
	if len(c.AuthSecret) < minSecretLength {
		return ErrSecretTooShort
	}
	if c.S3Bucket != "" && (c.S3AccessKey == "" || c.S3SecretKey == "") {
		return ErrS3Incomplete
	}
	return nil
}
