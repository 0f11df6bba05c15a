package config

import (
	"fmt"
	"io"
	"os"

	"github.com/xlttj/monswitch/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of the stored settings
type Document struct {
	Linux LinuxSettings `yaml:"linux"`
}

// Export writes the current settings as YAML to w
func Export(store SettingsStore, w io.Writer) error {
	doc := Document{Linux: store.Linux()}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return enc.Close()
}

// ExportFile writes the settings to path with owner-only permissions
func ExportFile(store SettingsStore, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file %s: %w", path, err)
	}
	// OpenFile keeps the mode of an existing file
	if err := f.Chmod(0600); err != nil {
		f.Close()
		return fmt.Errorf("failed to restrict export file %s: %w", path, err)
	}
	if err := Export(store, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file %s: %w", path, err)
	}
	logging.LogDebug("Exported settings to %s", path)
	return nil
}

// Import reads a YAML settings document from r and saves it into store.
// Empty fields in the document keep the stored value.
func Import(store SettingsStore, r io.Reader) (LinuxSettings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return LinuxSettings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return LinuxSettings{}, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	merged := store.Linux()
	if doc.Linux.Address != "" {
		merged.Address = doc.Linux.Address
	}
	if doc.Linux.Username != "" {
		merged.Username = doc.Linux.Username
	}
	if doc.Linux.Password != "" {
		merged.Password = doc.Linux.Password
	}

	if err := store.SaveLinux(merged); err != nil {
		return LinuxSettings{}, err
	}
	return merged, nil
}

// ImportFile imports settings from the YAML file at path
func ImportFile(store SettingsStore, path string) (LinuxSettings, error) {
	f, err := os.Open(path)
	if err != nil {
		return LinuxSettings{}, fmt.Errorf("failed to open settings file %s: %w", path, err)
	}
	defer f.Close()

	ls, err := Import(store, f)
	if err != nil {
		return LinuxSettings{}, err
	}
	logging.LogDebug("Imported settings from %s", path)
	return ls, nil
}
