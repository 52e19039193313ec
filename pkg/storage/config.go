package storage

import (
	"fmt"
	"os"
)

// Config holds filesystem blob storage parameters.
type Config struct {
	Root string `toml:"root"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Root string
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
	if overlay.Root != "" {
		c.Root = overlay.Root
	}
}

func (c *Config) loadDefaults() {
	if c.Root == "" {
		c.Root = "./uploads"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Root != "" {
		if v := os.Getenv(env.Root); v != "" {
			c.Root = v
		}
	}
}

func (c *Config) validate() error {
	if c.Root == "" {
		return fmt.Errorf("root required")
	}
	return nil
}
