package jira

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %v, want 3", cfg.MaxAttempts)
	}
	if cfg.RetryWaitMin != 1*time.Second {
		t.Errorf("RetryWaitMin = %v, want 1s", cfg.RetryWaitMin)
	}
	if cfg.RetryWaitMax != 30*time.Second {
		t.Errorf("RetryWaitMax = %v, want 30s", cfg.RetryWaitMax)
	}
	if !cfg.RetryJitter {
		t.Error("RetryJitter should default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid",
			config: Config{
				URL:      "https://example.atlassian.net",
				Email:    "user@example.com",
				APIToken: "token",
			},
			wantErr: nil,
		},
		{
			name:    "missing URL",
			config:  Config{Email: "user@example.com", APIToken: "token"},
			wantErr: ErrConfigURLRequired,
		},
		{
			name: "URL without scheme",
			config: Config{
				URL:      "example.atlassian.net",
				Email:    "user@example.com",
				APIToken: "token",
			},
			wantErr: ErrConfigURLScheme,
		},
		{
			name: "missing email",
			config: Config{
				URL:      "https://example.atlassian.net",
				APIToken: "token",
			},
			wantErr: ErrConfigEmailRequired,
		},
		{
			name: "missing token",
			config: Config{
				URL:   "https://example.atlassian.net",
				Email: "user@example.com",
			},
			wantErr: ErrConfigTokenRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URL = "https://example.atlassian.net"

	clone := cfg.Clone()
	clone.URL = "https://other.atlassian.net"

	if cfg.URL != "https://example.atlassian.net" {
		t.Error("Clone should not share state with the original")
	}

	var nilCfg *Config
	if nilCfg.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
