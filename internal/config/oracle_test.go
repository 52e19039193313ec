package config_test

import (
	"testing"
	"time"

	"github.com/reqsmith/casegen/internal/config"
)

func TestOracleConfigFinalizeDefaults(t *testing.T) {
	cfg := config.OracleConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultConfidence != 0.5 {
		t.Errorf("DefaultConfidence = %v, want 0.5", cfg.DefaultConfidence)
	}
	if cfg.RetryIntervalDuration() != time.Second {
		t.Errorf("RetryInterval = %v, want 1s", cfg.RetryIntervalDuration())
	}
	if cfg.RetryMaxElapsedDuration() != 30*time.Second {
		t.Errorf("RetryMaxElapsed = %v, want 30s", cfg.RetryMaxElapsedDuration())
	}
}

func TestOracleConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("CASEGEN_ORACLE_MODEL", "gpt-test")
	t.Setenv("CASEGEN_ORACLE_DEFAULT_CONFIDENCE", "0.75")
	t.Setenv("CASEGEN_ORACLE_RETRY_INTERVAL", "2s")

	cfg := config.OracleConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Model != "gpt-test" {
		t.Errorf("Model = %q, want gpt-test", cfg.Model)
	}
	if cfg.DefaultConfidence != 0.75 {
		t.Errorf("DefaultConfidence = %v, want 0.75", cfg.DefaultConfidence)
	}
	if cfg.RetryInterval != "2s" {
		t.Errorf("RetryInterval = %q, want 2s", cfg.RetryInterval)
	}
}

func TestOracleConfigValidation(t *testing.T) {
	cfg := config.OracleConfig{DefaultConfidence: 1.5}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for confidence above 1")
	}

	cfg = config.OracleConfig{RetryInterval: "soon"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for unparseable retry_interval")
	}
}

func TestOracleConfigMerge(t *testing.T) {
	base := config.OracleConfig{Model: "base", DefaultConfidence: 0.5}
	overlay := config.OracleConfig{Model: "overlay"}
	base.Merge(&overlay)

	if base.Model != "overlay" {
		t.Errorf("Model = %q, want overlay", base.Model)
	}
	if base.DefaultConfidence != 0.5 {
		t.Errorf("DefaultConfidence = %v, want 0.5 (unchanged)", base.DefaultConfidence)
	}
}

func TestTrackerConfigMerge(t *testing.T) {
	base := config.TrackerConfig{BaseURL: "https://a", Project: "PROJ"}
	overlay := config.TrackerConfig{BaseURL: "https://b"}
	base.Merge(&overlay)

	if base.BaseURL != "https://b" {
		t.Errorf("BaseURL = %q, want overlay value", base.BaseURL)
	}
	if base.Project != "PROJ" {
		t.Errorf("Project = %q, want unchanged", base.Project)
	}
}
