package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvOracleModel             = "CASEGEN_ORACLE_MODEL"
	EnvOracleDefaultConfidence = "CASEGEN_ORACLE_DEFAULT_CONFIDENCE"
	EnvOracleRetryInterval     = "CASEGEN_ORACLE_RETRY_INTERVAL"
	EnvOracleRetryMaxElapsed   = "CASEGEN_ORACLE_RETRY_MAX_ELAPSED"
)

// OracleConfig holds LLM oracle behavior settings: the model name recorded
// on generation events, the confidence assigned to extracted fields the
// oracle does not score, and the retry bounds for transient oracle failures.
type OracleConfig struct {
	Model             string  `toml:"model"`
	DefaultConfidence float64 `toml:"default_confidence"`
	RetryInterval     string  `toml:"retry_interval"`
	RetryMaxElapsed   string  `toml:"retry_max_elapsed"`
}

// RetryIntervalDuration returns RetryInterval as a time.Duration.
func (c *OracleConfig) RetryIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryInterval)
	return d
}

// RetryMaxElapsedDuration returns RetryMaxElapsed as a time.Duration.
func (c *OracleConfig) RetryMaxElapsedDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryMaxElapsed)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OracleConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OracleConfig) Merge(overlay *OracleConfig) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.DefaultConfidence != 0 {
		c.DefaultConfidence = overlay.DefaultConfidence
	}
	if overlay.RetryInterval != "" {
		c.RetryInterval = overlay.RetryInterval
	}
	if overlay.RetryMaxElapsed != "" {
		c.RetryMaxElapsed = overlay.RetryMaxElapsed
	}
}

func (c *OracleConfig) loadDefaults() {
	if c.DefaultConfidence == 0 {
		c.DefaultConfidence = 0.5
	}
	if c.RetryInterval == "" {
		c.RetryInterval = "1s"
	}
	if c.RetryMaxElapsed == "" {
		c.RetryMaxElapsed = "30s"
	}
}

func (c *OracleConfig) loadEnv() {
	if v := os.Getenv(EnvOracleModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvOracleDefaultConfidence); v != "" {
		if conf, err := strconv.ParseFloat(v, 64); err == nil {
			c.DefaultConfidence = conf
		}
	}
	if v := os.Getenv(EnvOracleRetryInterval); v != "" {
		c.RetryInterval = v
	}
	if v := os.Getenv(EnvOracleRetryMaxElapsed); v != "" {
		c.RetryMaxElapsed = v
	}
}

func (c *OracleConfig) validate() error {
	if c.DefaultConfidence < 0 || c.DefaultConfidence > 1 {
		return fmt.Errorf("invalid default_confidence: %f", c.DefaultConfidence)
	}
	if _, err := time.ParseDuration(c.RetryInterval); err != nil {
		return fmt.Errorf("invalid retry_interval: %w", err)
	}
	if _, err := time.ParseDuration(c.RetryMaxElapsed); err != nil {
		return fmt.Errorf("invalid retry_max_elapsed: %w", err)
	}
	return nil
}
