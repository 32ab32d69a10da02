// Package config handles filabel configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/filabel/internal/atomicfile"
	"github.com/aidanlsb/filabel/internal/store"
)

// EnvDatabase overrides the configured database locator.
const EnvDatabase = "FILABEL_DB"

// Config represents the filabel configuration file.
type Config struct {
	// Database is the default catalog locator: a path or sqlite:// URL.
	Database string `toml:"database"`

	// LogLevel sets diagnostic verbosity on stderr: debug, info, warn or error.
	LogLevel string `toml:"log_level"`

	// AuditLog is an optional JSON-lines journal of catalog mutations.
	// Relative paths resolve against the directory of the config file.
	AuditLog string `toml:"audit_log"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DatabaseLocator picks the catalog locator: the explicit flag, then
// $FILABEL_DB, then the config file, then store.DefaultLocator.
func (c *Config) DatabaseLocator(flag string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		return v
	}
	if c != nil {
		if v := strings.TrimSpace(c.Database); v != "" {
			return v
		}
	}
	return store.DefaultLocator
}

// AuditLogPath returns the journal location, resolving a relative audit_log
// against configDir. It returns "" when no journal is configured.
func (c *Config) AuditLogPath(configDir string) string {
	if c == nil {
		return ""
	}
	p := strings.TrimSpace(c.AuditLog)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(configDir, p)
}

// LoadOptional loads path, returning a default config if it doesn't exist.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// ResolvePath returns the explicit path if set, otherwise DefaultPath.
func ResolvePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/filabel/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "filabel", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "filabel", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# filabel configuration

# Catalog database: a file path or sqlite:// URL.
# Overridden by --db and $FILABEL_DB.
# database = "dataset.sqlite"

# Diagnostics on stderr: debug, info, warn, error.
# log_level = "warn"

# Journal of labels/splits/add/move/remove operations, one JSON object per line.
# audit_log = "filabel-audit.jsonl"

# Optional accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault writes a commented default config to path if nothing exists there.
// It reports whether a file was written.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}
