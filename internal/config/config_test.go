package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://api.example.com/api"
	cfg.GitHubBaseURL = "https://gh.example.com"

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.APIBaseURL != "https://api.example.com/api" {
		t.Errorf("APIBaseURL: got %q, want %q", loaded.APIBaseURL, "https://api.example.com/api")
	}
	if loaded.GitHubBaseURL != "https://gh.example.com" {
		t.Errorf("GitHubBaseURL: got %q, want %q", loaded.GitHubBaseURL, "https://gh.example.com")
	}
}

func TestReadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig failed on missing file: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:5000/api" {
		t.Errorf("default APIBaseURL: got %q", cfg.APIBaseURL)
	}
	if cfg.GitHubBaseURL != "http://localhost:5070" {
		t.Errorf("default GitHubBaseURL: got %q", cfg.GitHubBaseURL)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://file.example.com/api"
	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	t.Setenv(EnvAPIURL, "https://env.example.com/api")
	t.Setenv(EnvGitHubURL, "https://env-gh.example.com")

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if loaded.APIBaseURL != "https://env.example.com/api" {
		t.Errorf("APIBaseURL: got %q, want env override", loaded.APIBaseURL)
	}
	if loaded.GitHubBaseURL != "https://env-gh.example.com" {
		t.Errorf("GitHubBaseURL: got %q, want env override", loaded.GitHubBaseURL)
	}
}

func TestReadConfigMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: [not a scalar"), 0644); err != nil {
		t.Fatalf("writing malformed config: %v", err)
	}

	if _, err := ReadConfig(tmpDir); err == nil {
		t.Error("ReadConfig should fail on malformed YAML")
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.HistoryPath("/home/dev/.atim")
	if got != filepath.Join("/home/dev/.atim", "history.db") {
		t.Errorf("HistoryPath: got %q", got)
	}

	cfg.HistoryDB = "/var/lib/atim/history.db"
	if cfg.HistoryPath("/home/dev/.atim") != "/var/lib/atim/history.db" {
		t.Error("absolute HistoryDB should be returned unchanged")
	}
}
