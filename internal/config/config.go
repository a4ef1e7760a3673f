// Package config loads loudly's server configuration from a YAML file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment names. Only EnvTest may enable the authorization bypass.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Session backends.
const (
	SessionSQLite = "sqlite"
	SessionRedis  = "redis"
)

const (
	defaultCommentsPerPage = 20
	defaultLoginTimeoutMS  = 300000
	defaultSessionTTL      = 7 * 24 * time.Hour
	defaultAddr            = ":3000"
)

// Admin is the single configured admin identity.
type Admin struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// IsZero reports whether no admin identity is configured.
func (a Admin) IsZero() bool {
	return a.User == "" && a.Password == ""
}

// Config holds server configuration.
type Config struct {
	Env             string        `yaml:"env"`
	Addr            string        `yaml:"addr"`
	Admin           Admin         `yaml:"admin"`
	Database        string        `yaml:"database"`
	LoginTimeoutMS  int64         `yaml:"login_timeout_ms"`
	CommentsPerPage int           `yaml:"comments_per_page"`
	DisableAuth     bool          `yaml:"disable_auth"`
	SessionBackend  string        `yaml:"session_backend"`
	SessionTTL      time.Duration `yaml:"session_ttl"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	RedisAddr       string        `yaml:"redis_addr"`
	RedisPassword   string        `yaml:"redis_password"`
	RedisDB         int           `yaml:"redis_db"`
}

// Default returns the built-in configuration for env.
func Default(env string) (Config, error) {
	cfg := Config{
		Env:             env,
		Addr:            defaultAddr,
		LoginTimeoutMS:  defaultLoginTimeoutMS,
		CommentsPerPage: defaultCommentsPerPage,
		SessionBackend:  SessionSQLite,
		SessionTTL:      defaultSessionTTL,
	}

	switch env {
	case EnvDevelopment:
		cfg.Database = "./content/db/loudly-dev.sqlite"
	case EnvProduction:
		cfg.Admin = Admin{User: "loudly", Password: "admin"}
		cfg.Database = "./content/db/loudly-prod.sqlite"
		cfg.SecureCookies = true
	case EnvTest:
		cfg.Admin = Admin{User: "loudly", Password: "admin"}
		cfg.Database = "./content/db/loudly-test.sqlite"
	default:
		return Config{}, fmt.Errorf("cannot find configuration %q", env)
	}

	return cfg, nil
}

// Load builds the configuration for env. Values from the YAML file at path
// override the defaults and environment variables override both. A missing
// file is not an error.
func Load(path, env string) (Config, error) {
	if v := os.Getenv("LOUDLY_ENV"); v != "" {
		env = v
	}
	if env == "" {
		env = EnvDevelopment
	}

	cfg, err := Default(env)
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config: %w", err)
			}
		}
	}
	// The file may not switch environments underneath the defaults.
	cfg.Env = env

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("LOUDLY_ADDR", &c.Addr)
	setString("LOUDLY_DB", &c.Database)
	setString("LOUDLY_ADMIN_USER", &c.Admin.User)
	setString("LOUDLY_ADMIN_PASSWORD", &c.Admin.Password)
	setString("LOUDLY_SESSION_BACKEND", &c.SessionBackend)
	setString("LOUDLY_REDIS_ADDR", &c.RedisAddr)

	if v := os.Getenv("LOUDLY_LOGIN_TIMEOUT_MS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LOUDLY_LOGIN_TIMEOUT_MS: %w", err)
		}
		c.LoginTimeoutMS = n
	}
	if v := os.Getenv("LOUDLY_COMMENTS_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOUDLY_COMMENTS_PER_PAGE: %w", err)
		}
		c.CommentsPerPage = n
	}
	if v := os.Getenv("LOUDLY_DISABLE_AUTH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOUDLY_DISABLE_AUTH: %w", err)
		}
		c.DisableAuth = b
	}

	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	if c.LoginTimeoutMS <= 0 {
		return fmt.Errorf("login_timeout_ms must be positive, got %d", c.LoginTimeoutMS)
	}
	if c.CommentsPerPage <= 0 {
		return fmt.Errorf("comments_per_page must be positive, got %d", c.CommentsPerPage)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	switch c.SessionBackend {
	case SessionSQLite:
	case SessionRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.Env == EnvProduction && c.Admin.IsZero() {
		return fmt.Errorf("production requires an admin identity")
	}
	return nil
}

// LoginSkew is the tolerated difference between client and server clocks
// during login.
func (c Config) LoginSkew() time.Duration {
	return time.Duration(c.LoginTimeoutMS) * time.Millisecond
}

// AuthBypass reports whether admin-only routes skip the authorization gate.
// It is only ever true in the test environment.
func (c Config) AuthBypass() bool {
	return c.Env == EnvTest && c.DisableAuth
}

// DevMode reports whether human-readable debug logging should be used.
func (c Config) DevMode() bool {
	return c.Env == EnvDevelopment
}
