package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/filabel/internal/atomicfile"
)

type persistedConfig struct {
	Database *string              `toml:"database,omitempty"`
	LogLevel *string              `toml:"log_level,omitempty"`
	AuditLog *string              `toml:"audit_log,omitempty"`
	UI       *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Keys lists the settings accepted by Set.
var Keys = []string{"database", "log_level", "audit_log", "ui.accent"}

// Set assigns a setting by its TOML key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "database":
		c.Database = value
	case "log_level":
		c.LogLevel = value
	case "audit_log":
		c.AuditLog = value
	case "ui.accent":
		c.UI.Accent = value
	default:
		return fmt.Errorf("unknown config key %q (expected one of %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// SaveTo writes the config to a specific path atomically.
// Empty settings are omitted.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		Database: nonEmptyPtr(cfg.Database),
		LogLevel: nonEmptyPtr(cfg.LogLevel),
		AuditLog: nonEmptyPtr(cfg.AuditLog),
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
