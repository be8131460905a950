package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvWorkersParseConcurrency    = "TALON_WORKERS_PARSE_CONCURRENCY"
	EnvWorkersEvaluateConcurrency = "TALON_WORKERS_EVALUATE_CONCURRENCY"
)

// WorkersConfig sizes the queue consumer pools.
type WorkersConfig struct {
	ParseConcurrency    int `toml:"parse_concurrency"`
	EvaluateConcurrency int `toml:"evaluate_concurrency"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkersConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkersConfig) Merge(overlay *WorkersConfig) {
	if overlay.ParseConcurrency != 0 {
		c.ParseConcurrency = overlay.ParseConcurrency
	}
	if overlay.EvaluateConcurrency != 0 {
		c.EvaluateConcurrency = overlay.EvaluateConcurrency
	}
}

func (c *WorkersConfig) loadDefaults() {
	if c.ParseConcurrency == 0 {
		c.ParseConcurrency = 5
	}
	if c.EvaluateConcurrency == 0 {
		c.EvaluateConcurrency = 3
	}
}

func (c *WorkersConfig) loadEnv() {
	if v := os.Getenv(EnvWorkersParseConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ParseConcurrency = n
		}
	}
	if v := os.Getenv(EnvWorkersEvaluateConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EvaluateConcurrency = n
		}
	}
}

func (c *WorkersConfig) validate() error {
	if c.ParseConcurrency < 1 {
		return fmt.Errorf("parse_concurrency must be positive")
	}
	if c.EvaluateConcurrency < 1 {
		return fmt.Errorf("evaluate_concurrency must be positive")
	}
	return nil
}
