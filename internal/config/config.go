package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/talonhq/talon/pkg/database"
	"github.com/talonhq/talon/pkg/queue"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvTalonEnv             = "TALON_ENV"
	EnvTalonShutdownTimeout = "TALON_SHUTDOWN_TIMEOUT"
	EnvTalonVersion         = "TALON_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "TALON_DB_HOST",
	Port:            "TALON_DB_PORT",
	Name:            "TALON_DB_NAME",
	User:            "TALON_DB_USER",
	Password:        "TALON_DB_PASSWORD",
	SSLMode:         "TALON_DB_SSL_MODE",
	MaxOpenConns:    "TALON_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "TALON_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "TALON_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "TALON_DB_CONN_TIMEOUT",
}

var queueEnv = &queue.Env{
	PollInterval: "TALON_QUEUE_POLL_INTERVAL",
	BaseDelay:    "TALON_QUEUE_BASE_DELAY",
	MaxAttempts:  "TALON_QUEUE_MAX_ATTEMPTS",
	JobTimeout:   "TALON_QUEUE_JOB_TIMEOUT",
}

// Config is the root configuration for the Talon service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Queue           queue.Config    `toml:"queue"`
	Workers         WorkersConfig   `toml:"workers"`
	Oracle          OracleConfig    `toml:"oracle"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the TALON_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvTalonEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Queue.Merge(&overlay.Queue)
	c.Workers.Merge(&overlay.Workers)
	c.Oracle.Merge(&overlay.Oracle)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Queue.Finalize(queueEnv); err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	if err := c.Workers.Finalize(); err != nil {
		return fmt.Errorf("workers: %w", err)
	}
	if err := c.Oracle.Finalize(); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvTalonShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvTalonVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvTalonEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
