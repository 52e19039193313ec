package config

import "os"

const (
	EnvTrackerBaseURL   = "CASEGEN_TRACKER_BASE_URL"
	EnvTrackerUsername  = "CASEGEN_TRACKER_USERNAME"
	EnvTrackerToken     = "CASEGEN_TRACKER_TOKEN"
	EnvTrackerProject   = "CASEGEN_TRACKER_PROJECT"
	EnvTrackerIssueType = "CASEGEN_TRACKER_ISSUE_TYPE"
)

// TrackerConfig holds the default issue tracker connection. The tracker is
// optional at startup; the export stage validates completeness when a push
// is actually requested.
type TrackerConfig struct {
	BaseURL   string `toml:"base_url"`
	Username  string `toml:"username"`
	Token     string `toml:"token"`
	Project   string `toml:"project"`
	IssueType string `toml:"issue_type"`
}

// Finalize applies environment variable overrides. No defaults exist and
// validation is deferred to push time.
func (c *TrackerConfig) Finalize() error {
	c.loadEnv()
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *TrackerConfig) Merge(overlay *TrackerConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Username != "" {
		c.Username = overlay.Username
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.Project != "" {
		c.Project = overlay.Project
	}
	if overlay.IssueType != "" {
		c.IssueType = overlay.IssueType
	}
}

func (c *TrackerConfig) loadEnv() {
	if v := os.Getenv(EnvTrackerBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvTrackerUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvTrackerToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvTrackerProject); v != "" {
		c.Project = v
	}
	if v := os.Getenv(EnvTrackerIssueType); v != "" {
		c.IssueType = v
	}
}
