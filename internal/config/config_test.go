package config_test

import (
	"testing"
	"time"

	"github.com/talonhq/talon/internal/config"
)

func TestWorkersConfigFinalizeDefaults(t *testing.T) {
	cfg := config.WorkersConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ParseConcurrency != 5 {
		t.Errorf("ParseConcurrency = %d, want 5", cfg.ParseConcurrency)
	}
	if cfg.EvaluateConcurrency != 3 {
		t.Errorf("EvaluateConcurrency = %d, want 3", cfg.EvaluateConcurrency)
	}
}

func TestWorkersConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TALON_WORKERS_PARSE_CONCURRENCY", "8")
	t.Setenv("TALON_WORKERS_EVALUATE_CONCURRENCY", "2")

	cfg := config.WorkersConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ParseConcurrency != 8 {
		t.Errorf("ParseConcurrency = %d, want 8", cfg.ParseConcurrency)
	}
	if cfg.EvaluateConcurrency != 2 {
		t.Errorf("EvaluateConcurrency = %d, want 2", cfg.EvaluateConcurrency)
	}
}

func TestWorkersConfigValidation(t *testing.T) {
	cfg := config.WorkersConfig{ParseConcurrency: -1}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestWorkersConfigMerge(t *testing.T) {
	base := config.WorkersConfig{ParseConcurrency: 5, EvaluateConcurrency: 3}
	overlay := config.WorkersConfig{EvaluateConcurrency: 6}
	base.Merge(&overlay)

	if base.ParseConcurrency != 5 {
		t.Errorf("ParseConcurrency = %d, want 5 (unchanged)", base.ParseConcurrency)
	}
	if base.EvaluateConcurrency != 6 {
		t.Errorf("EvaluateConcurrency = %d, want 6", base.EvaluateConcurrency)
	}
}

func TestOracleConfigFinalizeDefaults(t *testing.T) {
	cfg := config.OracleConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", cfg.Model)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", cfg.Temperature)
	}
}

func TestOracleConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TALON_ORACLE_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("TALON_ORACLE_MODEL", "llama3")
	t.Setenv("TALON_ORACLE_TEMPERATURE", "0.5")

	cfg := config.OracleConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Model != "llama3" {
		t.Errorf("Model = %q, want llama3", cfg.Model)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Temperature = %v, want 0.5", cfg.Temperature)
	}
}

func TestOracleConfigValidation(t *testing.T) {
	cfg := config.OracleConfig{Temperature: 3}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestOracleConfigClient(t *testing.T) {
	cfg := config.OracleConfig{
		BaseURL:     "http://localhost:11434/v1",
		APIKey:      "secret",
		Model:       "llama3",
		Temperature: 0.25,
	}

	client := cfg.Client()
	if client.BaseURL != cfg.BaseURL || client.APIKey != cfg.APIKey || client.Model != cfg.Model {
		t.Errorf("Client() = %+v, want fields copied from %+v", client, cfg)
	}
	if client.Temperature != 0.25 {
		t.Errorf("Temperature = %v, want 0.25", client.Temperature)
	}
}

func TestServerConfigFinalizeDefaults(t *testing.T) {
	cfg := config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("ReadTimeoutDuration() = %v, want 1m", cfg.ReadTimeoutDuration())
	}
}

func TestServerConfigValidation(t *testing.T) {
	cfg := config.ServerConfig{Port: 99999}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error, got nil")
	}
}
