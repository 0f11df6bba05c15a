package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xlttj/monswitch/pkg/logging"

	_ "modernc.org/sqlite"
)

// DatabaseFileName is the settings database inside the data directory
const DatabaseFileName = "monswitch.db"

// SQLiteSettingsStore persists namespaced key/value settings in SQLite
type SQLiteSettingsStore struct {
	db     *sql.DB
	mutex  sync.RWMutex
	dbPath string
}

// NewSQLiteSettingsStore opens the settings database in the data directory
func NewSQLiteSettingsStore() (*SQLiteSettingsStore, error) {
	configDir, err := logging.DataDir()
	if err != nil {
		return nil, err
	}
	return OpenSQLiteSettingsStore(filepath.Join(configDir, DatabaseFileName))
}

// OpenSQLiteSettingsStore opens (creating if needed) the database at dbPath
func OpenSQLiteSettingsStore(dbPath string) (*SQLiteSettingsStore, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// The database holds the remote password; create it 0600 before sqlite opens it
	if _, statErr := os.Stat(dbPath); os.IsNotExist(statErr) {
		f, ferr := os.OpenFile(dbPath, os.O_CREATE|os.O_RDONLY, 0600)
		if ferr == nil {
			_ = f.Close()
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteSettingsStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.LogDebug("SQLite settings store initialized at: %s", dbPath)
	return store, nil
}

// initializeSchema creates the settings table
func (s *SQLiteSettingsStore) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Path returns the database file location
func (s *SQLiteSettingsStore) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SQLiteSettingsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Value returns the stored value for key, or "" when unset
func (s *SQLiteSettingsStore) Value(key string) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.valueUnsafe(key)
}

// SetValue stores value under key
func (s *SQLiteSettingsStore) SetValue(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, err := s.db.Exec(upsertQuery, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	logging.LogDebug("Set setting: %s", key)
	return nil
}

// Keys returns all stored keys in sorted order
func (s *SQLiteSettingsStore) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rows, err := s.db.Query(`SELECT key FROM settings ORDER BY key`)
	if err != nil {
		logging.LogError("Failed to query settings keys: %v", err)
		return []string{}
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			logging.LogError("Failed to scan settings key: %v", err)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// Clear removes every key starting with prefix and returns how many were removed
func (s *SQLiteSettingsStore) Clear(prefix string) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Escape LIKE wildcards so the prefix is matched literally
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	result, err := s.db.Exec(`DELETE FROM settings WHERE key LIKE ? ESCAPE '\'`, escaped+"%")
	if err != nil {
		return 0, fmt.Errorf("failed to clear %q: %w", prefix, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	logging.LogDebug("Cleared %d setting(s) with prefix %q", rowsAffected, prefix)
	return int(rowsAffected), nil
}

// Linux reads the remote desktop credentials
func (s *SQLiteSettingsStore) Linux() LinuxSettings {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return LinuxSettings{
		Address:  s.valueUnsafe(KeyLinuxAddress),
		Username: s.valueUnsafe(KeyLinuxUsername),
		Password: s.valueUnsafe(KeyLinuxPassword),
	}
}

// SaveLinux writes all three credential keys in one transaction
func (s *SQLiteSettingsStore) SaveLinux(ls LinuxSettings) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	values := map[string]string{
		KeyLinuxAddress:  ls.Address,
		KeyLinuxUsername: ls.Username,
		KeyLinuxPassword: ls.Password,
	}
	for _, key := range KnownKeys {
		if _, err := tx.Exec(upsertQuery, key, values[key]); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logging.LogDebug("Saved linux settings for %s@%s", ls.Username, ls.Address)
	return nil
}

const upsertQuery = `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
`

// Helper methods (must be called with mutex already held)

func (s *SQLiteSettingsStore) valueUnsafe(key string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			logging.LogError("Failed to query setting %s: %v", key, err)
		}
		return ""
	}
	return value
}
