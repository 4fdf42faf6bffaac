// Package config loads the assistant's settings from the optional
// ~/.sprintsense/config.json file and SPRINTSENSE_* environment
// variables. Environment values win over file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the Azure DevOps connection and the defaults applied to
// generated tasks. Credentials are never written back to disk.
type Config struct {
	Organization string `json:"organization"`
	Project      string `json:"project"`
	PAT          string `json:"pat,omitempty"`
	User         string `json:"user"`
	Level        string `json:"level"`
	DBPath       string `json:"db_path"`
}

// Load reads the config file (if present) and applies environment
// overrides. A missing file is not an error; missing required fields are
// only rejected by Validate, so read-only commands can run unconfigured.
func Load() (Config, error) {
	var cfg Config

	path, err := configPath()
	if err == nil {
		if data, readErr := os.ReadFile(path); readErr == nil {
			if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, jsonErr)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Level == "" {
		cfg.Level = "mid"
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".sprintsense", "sprintsense.db")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SPRINTSENSE_ORG"); v != "" {
		cfg.Organization = v
	}
	if v := os.Getenv("SPRINTSENSE_PROJECT"); v != "" {
		cfg.Project = v
	}
	if v := os.Getenv("SPRINTSENSE_PAT"); v != "" {
		cfg.PAT = v
	}
	if v := os.Getenv("SPRINTSENSE_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("SPRINTSENSE_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("SPRINTSENSE_DB"); v != "" {
		cfg.DBPath = v
	}
}

// Validate checks the fields needed to talk to Azure DevOps.
func (c Config) Validate() error {
	if c.Organization == "" {
		return fmt.Errorf("organization is not set (SPRINTSENSE_ORG or config file)")
	}
	if c.Project == "" {
		return fmt.Errorf("project is not set (SPRINTSENSE_PROJECT or config file)")
	}
	if c.PAT == "" {
		return fmt.Errorf("personal access token is not set (SPRINTSENSE_PAT or config file)")
	}
	return nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sprintsense", "config.json"), nil
}
