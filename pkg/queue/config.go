package queue

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds queue scheduling parameters.
type Config struct {
	PollInterval string `toml:"poll_interval"`
	BaseDelay    string `toml:"base_delay"`
	MaxAttempts  int    `toml:"max_attempts"`
	JobTimeout   string `toml:"job_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	PollInterval string
	BaseDelay    string
	MaxAttempts  string
	JobTimeout   string
}

// PollIntervalDuration returns PollInterval as a time.Duration.
func (c *Config) PollIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// BaseDelayDuration returns BaseDelay as a time.Duration.
func (c *Config) BaseDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.BaseDelay)
	return d
}

// JobTimeoutDuration returns JobTimeout as a time.Duration.
func (c *Config) JobTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.JobTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.PollInterval != "" {
		c.PollInterval = overlay.PollInterval
	}
	if overlay.BaseDelay != "" {
		c.BaseDelay = overlay.BaseDelay
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.JobTimeout != "" {
		c.JobTimeout = overlay.JobTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.PollInterval == "" {
		c.PollInterval = "500ms"
	}
	if c.BaseDelay == "" {
		c.BaseDelay = "2s"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.JobTimeout == "" {
		c.JobTimeout = "5m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.PollInterval != "" {
		if v := os.Getenv(env.PollInterval); v != "" {
			c.PollInterval = v
		}
	}
	if env.BaseDelay != "" {
		if v := os.Getenv(env.BaseDelay); v != "" {
			c.BaseDelay = v
		}
	}
	if env.MaxAttempts != "" {
		if v := os.Getenv(env.MaxAttempts); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxAttempts = n
			}
		}
	}
	if env.JobTimeout != "" {
		if v := os.Getenv(env.JobTimeout); v != "" {
			c.JobTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.PollInterval); err != nil {
		return fmt.Errorf("invalid poll_interval: %w", err)
	}
	if _, err := time.ParseDuration(c.BaseDelay); err != nil {
		return fmt.Errorf("invalid base_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.JobTimeout); err != nil {
		return fmt.Errorf("invalid job_timeout: %w", err)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be positive")
	}
	return nil
}
