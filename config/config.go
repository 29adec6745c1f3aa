// Package config loads jiractl settings from the environment, dotenv
// files, and an optional YAML config file.
//
// Resolution order, highest precedence first:
//
//  1. Process environment variables
//  2. ./.env
//  3. ~/.jira.env
//  4. /etc/jira-tools.env
//  5. ~/.config/jiractl/config.yaml
//
// Dotenv files never override variables already set, so the process
// environment always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mwhitfield/jiractl/jira"
)

// Environment variable names.
const (
	EnvURL        = "JIRA_URL"
	EnvEmail      = "JIRA_EMAIL"
	EnvAPIToken   = "JIRA_API_TOKEN"
	EnvProjectKey = "JIRA_PROJECT_KEY"
)

var systemEnvFile = "/etc/jira-tools.env"

// MissingVarsError reports required variables that were not found in any
// searched location.
type MissingVarsError struct {
	Vars     []string
	Searched []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required configuration: %s (searched: environment, %s)",
		strings.Join(e.Vars, ", "), strings.Join(e.Searched, ", "))
}

// fileConfig mirrors the YAML config file layout.
type fileConfig struct {
	URL          string        `yaml:"url"`
	Email        string        `yaml:"email"`
	APIToken     string        `yaml:"api_token"`
	ProjectKey   string        `yaml:"project_key"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max"`
}

// Load resolves a jira.Config from the environment, dotenv files, and the
// YAML config file.
func Load() (*jira.Config, error) {
	searched := loadDotenvFiles()

	cfg := jira.DefaultConfig()

	yamlPath := configFilePath()
	if yamlPath != "" {
		fc, err := loadYAMLFile(yamlPath)
		if err != nil {
			return nil, err
		}
		if fc != nil {
			applyFileConfig(cfg, fc)
			searched = append(searched, yamlPath)
		}
	}

	if v := os.Getenv(EnvURL); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv(EnvEmail); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv(EnvProjectKey); v != "" {
		cfg.ProjectKey = v
	}

	cfg.URL = strings.TrimSuffix(cfg.URL, "/")

	var missing []string
	if cfg.URL == "" {
		missing = append(missing, EnvURL)
	}
	if cfg.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if cfg.APIToken == "" {
		missing = append(missing, EnvAPIToken)
	}
	if len(missing) > 0 {
		return nil, &MissingVarsError{Vars: missing, Searched: searched}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotenvFiles loads each dotenv location without overriding variables
// already present, and returns the paths it looked at.
func loadDotenvFiles() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".jira.env"))
	}
	paths = append(paths, systemEnvFile)

	for _, p := range paths {
		// Missing files are expected; only existing ones are loaded.
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
	return paths
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jiractl", "config.yaml")
}

func loadYAMLFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

func applyFileConfig(cfg *jira.Config, fc *fileConfig) {
	if fc.URL != "" {
		cfg.URL = fc.URL
	}
	if fc.Email != "" {
		cfg.Email = fc.Email
	}
	if fc.APIToken != "" {
		cfg.APIToken = fc.APIToken
	}
	if fc.ProjectKey != "" {
		cfg.ProjectKey = fc.ProjectKey
	}
	if fc.Timeout > 0 {
		cfg.Timeout = fc.Timeout
	}
	if fc.MaxAttempts > 0 {
		cfg.MaxAttempts = fc.MaxAttempts
	}
	if fc.RetryWaitMin > 0 {
		cfg.RetryWaitMin = fc.RetryWaitMin
	}
	if fc.RetryWaitMax > 0 {
		cfg.RetryWaitMax = fc.RetryWaitMax
	}
}
