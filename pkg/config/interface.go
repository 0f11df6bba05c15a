package config

import "errors"

// ErrUnknownKey is returned when writing a key the application does not use
var ErrUnknownKey = errors.New("unknown settings key")

// SettingsStore defines the interface for settings storage
type SettingsStore interface {
	// Key/value operations
	Value(key string) string
	SetValue(key, value string) error
	Keys() []string
	Clear(prefix string) (int, error)

	// Remote desktop credentials
	Linux() LinuxSettings
	SaveLinux(s LinuxSettings) error

	Close() error
}

// NewSettingsStore creates a new settings store (defaults to SQLite)
func NewSettingsStore() (SettingsStore, error) {
	store, err := NewSQLiteSettingsStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// isKnownKey reports whether key is one of KnownKeys
func isKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}
