package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/talonhq/talon/internal/oracle"
)

const (
	EnvOracleBaseURL     = "TALON_ORACLE_BASE_URL"
	EnvOracleAPIKey      = "TALON_ORACLE_API_KEY"
	EnvOracleModel       = "TALON_ORACLE_MODEL"
	EnvOracleTemperature = "TALON_ORACLE_TEMPERATURE"
)

// OracleConfig holds the scoring model connection settings. An empty
// base URL targets the default OpenAI endpoint; set it to point at any
// compatible local or proxied deployment.
type OracleConfig struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

// Client converts the section into the oracle client configuration.
func (c *OracleConfig) Client() oracle.Config {
	return oracle.Config{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.Model,
		Temperature: float32(c.Temperature),
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OracleConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OracleConfig) Merge(overlay *OracleConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
}

func (c *OracleConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.1
	}
}

func (c *OracleConfig) loadEnv() {
	if v := os.Getenv(EnvOracleBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvOracleAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvOracleModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvOracleTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = t
		}
	}
}

func (c *OracleConfig) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature out of range: %v", c.Temperature)
	}
	return nil
}
