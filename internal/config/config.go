// Package config handles reading and writing the atim client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable overrides. They win over config.yaml so deployments
// can point the client at a different backend without editing files.
const (
	EnvAPIURL    = "ATIM_API_URL"
	EnvGitHubURL = "ATIM_GITHUB_URL"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	APIBaseURL    string `yaml:"api_base_url"`
	GitHubBaseURL string `yaml:"github_base_url"`
	HistoryDB     string `yaml:"history_db"` // relative to the atim dir when not absolute
}

const configFile = "config.yaml"

// Dir returns the atim dot-directory under the user's home, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".atim"), nil
}

// ReadConfig reads config.yaml from dir, layering environment overrides on
// top. A missing file is not an error; defaults are used. A .env file in the
// working directory is loaded first when present.
func ReadConfig(dir string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir, creating dir if needed.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, configFile), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with local-development defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:    "http://localhost:5000/api",
		GitHubBaseURL: "http://localhost:5070",
		HistoryDB:     "history.db",
	}
}

// HistoryPath resolves the history database path against dir.
func (c *Config) HistoryPath(dir string) string {
	if filepath.IsAbs(c.HistoryDB) {
		return c.HistoryDB
	}
	return filepath.Join(dir, c.HistoryDB)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvGitHubURL); v != "" {
		cfg.GitHubBaseURL = v
	}
}
