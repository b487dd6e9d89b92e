package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Duration is a time.Duration that reads and writes Go duration strings.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"3s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config holds application configuration.
type Config struct {
	Dir              string   `json:"dir"`
	URL              string   `json:"url"`
	Candidates       []string `json:"candidates"`
	ProbeTimeout     Duration `json:"probe_timeout"`
	FetchTimeout     Duration `json:"fetch_timeout"`
	FaviconTimeout   Duration `json:"favicon_timeout"`
	Collation        string   `json:"collation"`
	ResetPageOnQuery bool     `json:"reset_page_on_query"`
	LogLevel         string   `json:"log_level"`
	LogFile          string   `json:"log_file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Dir: ".",
		Candidates: []string{
			"bookmarks.json",
			"bookmarks-export.json",
			"firefox-bookmarks.json",
			"chrome-bookmarks.json",
			"bookmarks-2025-07-27.json",
			"bookmarks.html",
		},
		ProbeTimeout:   Duration{3 * time.Second},
		FetchTimeout:   Duration{15 * time.Second},
		FaviconTimeout: Duration{8 * time.Second},
		Collation:      "en",
		LogLevel:       "info",
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Dir == "" {
		config.Dir = defaults.Dir
	}
	if config.Candidates == nil {
		config.Candidates = defaults.Candidates
	}
	if config.ProbeTimeout.Duration <= 0 {
		config.ProbeTimeout = defaults.ProbeTimeout
	}
	if config.FetchTimeout.Duration <= 0 {
		config.FetchTimeout = defaults.FetchTimeout
	}
	if config.FaviconTimeout.Duration <= 0 {
		config.FaviconTimeout = defaults.FaviconTimeout
	}
	if config.Collation == "" {
		config.Collation = defaults.Collation
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/bmg/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns the default log path: ~/.config/bmg/bmg.log
func DefaultLogPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bmg.log"), nil
}
