package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Theme is the persisted color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a theme. Only "dark" is dark; anything
// else, including an empty value, is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool {
	return t == ThemeDark
}

// Prefs is the state kept between sessions.
type Prefs struct {
	Theme Theme `json:"theme"`
}

// PrefStore defines the interface for persisting preferences.
type PrefStore interface {
	Load() (Prefs, error)
	Save(p Prefs) error
	Close() error
}

// JSONPrefs implements PrefStore using a JSON file.
type JSONPrefs struct {
	path string
}

// NewJSONPrefs creates a new JSONPrefs with the given file path.
func NewJSONPrefs(path string) *JSONPrefs {
	return &JSONPrefs{path: path}
}

// Path returns the storage file path.
func (s *JSONPrefs) Path() string {
	return s.path
}

// Load reads preferences from the JSON file.
// A missing file yields the light theme.
func (s *JSONPrefs) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{Theme: ThemeLight}, nil
		}
		return Prefs{}, err
	}

	var raw struct {
		Theme string `json:"theme"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Prefs{}, err
	}
	return Prefs{Theme: ParseTheme(raw.Theme)}, nil
}

// Save writes preferences to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONPrefs) Save(p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	p.Theme = ParseTheme(string(p.Theme))
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Close is a no-op.
func (s *JSONPrefs) Close() error {
	return nil
}

// configDir returns ~/.config/bmg.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmg"), nil
}

// DefaultPrefsPath returns the default preferences path: ~/.config/bmg/prefs.json
func DefaultPrefsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs.json"), nil
}

// OpenPrefs opens the preference store in dir, or ~/.config/bmg when dir is
// empty. Prefers SQLite if the database file exists, otherwise falls back to
// JSON.
func OpenPrefs(dir string) (PrefStore, error) {
	if dir == "" {
		var err error
		if dir, err = configDir(); err != nil {
			return nil, err
		}
	}

	sqlitePath := filepath.Join(dir, sqliteFile)
	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLitePrefs(sqlitePath)
	}

	return NewJSONPrefs(filepath.Join(dir, "prefs.json")), nil
}
