package jira

import (
	"strings"
	"time"
)

// Config holds the connection settings for a Jira Cloud instance.
type Config struct {
	// URL is the base URL, e.g. https://your-domain.atlassian.net.
	URL string `yaml:"url"`

	// Email and APIToken form the Basic auth pair.
	Email    string `yaml:"email"`
	APIToken string `yaml:"api_token"`

	// ProjectKey is the default project for creates and searches.
	ProjectKey string `yaml:"project_key"`

	// HTTP knobs.
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max"`
	RetryJitter  bool          `yaml:"retry_jitter"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		MaxAttempts:  3,
		RetryWaitMin: 1 * time.Second,
		RetryWaitMax: 30 * time.Second,
		RetryJitter:  true,
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrConfigURLRequired
	}
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return ErrConfigURLScheme
	}
	if c.Email == "" {
		return ErrConfigEmailRequired
	}
	if c.APIToken == "" {
		return ErrConfigTokenRequired
	}
	return nil
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
