package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	currentSchemaVersion = 2
	sqliteFile           = "bmg.db"

	themeKey = "theme"
)

// SQLitePrefs implements PrefStore using a key/value table in SQLite.
type SQLitePrefs struct {
	db   *sql.DB
	path string
}

// NewSQLitePrefs opens (or creates) the database at path and migrates it.
func NewSQLitePrefs(path string) (*SQLitePrefs, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLitePrefs{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLitePrefs) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLitePrefs) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the applied schema version.
func (s *SQLitePrefs) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	return version, err
}

func (s *SQLitePrefs) migrate() error {
	version, err := s.SchemaVersion()
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the key/value table.
func (s *SQLitePrefs) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 records when each value was last written.
func (s *SQLitePrefs) migrateV2() error {
	migration := `
		ALTER TABLE prefs ADD COLUMN updated_at TEXT NOT NULL DEFAULT '';
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

// Get returns the value stored under key and whether it was present.
func (s *SQLitePrefs) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLitePrefs) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Load reads preferences. An absent theme is light.
func (s *SQLitePrefs) Load() (Prefs, error) {
	value, _, err := s.Get(themeKey)
	if err != nil {
		return Prefs{}, err
	}
	return Prefs{Theme: ParseTheme(value)}, nil
}

// Save writes preferences.
func (s *SQLitePrefs) Save(p Prefs) error {
	return s.Set(themeKey, string(ParseTheme(string(p.Theme))))
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/bmg/bmg.db
func DefaultSQLitePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sqliteFile), nil
}
