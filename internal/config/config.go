// Package config loads and saves the configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/ttt/internal/model"
)

// FileConfig represents the configuration file.
type FileConfig struct {
	Defaults DefaultsConfig `toml:"defaults" yaml:"defaults" json:"defaults"`
	Theme    ThemeConfig    `toml:"theme" yaml:"theme" json:"theme"`
	Log      LogConfig      `toml:"log" yaml:"log" json:"log"`
}

// DefaultsConfig holds the settings a test starts with.
type DefaultsConfig struct {
	Mode     *string `toml:"mode,omitempty" yaml:"mode,omitempty" json:"mode,omitempty"`
	Text     *string `toml:"text,omitempty" yaml:"text,omitempty" json:"text,omitempty"`
	Duration *int    `toml:"duration,omitempty" yaml:"duration,omitempty" json:"duration,omitempty"`
	Count    *int    `toml:"count,omitempty" yaml:"count,omitempty" json:"count,omitempty"`
}

// ThemeConfig maps colour names or hex values to screen elements.
type ThemeConfig struct {
	Correct   *string `toml:"correct,omitempty" yaml:"correct,omitempty" json:"correct,omitempty"`
	Incorrect *string `toml:"incorrect,omitempty" yaml:"incorrect,omitempty" json:"incorrect,omitempty"`
	Pending   *string `toml:"pending,omitempty" yaml:"pending,omitempty" json:"pending,omitempty"`
	Skipped   *string `toml:"skipped,omitempty" yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Extra     *string `toml:"extra,omitempty" yaml:"extra,omitempty" json:"extra,omitempty"`
	Cursor    *string `toml:"cursor,omitempty" yaml:"cursor,omitempty" json:"cursor,omitempty"`
	Selected  *string `toml:"selected,omitempty" yaml:"selected,omitempty" json:"selected,omitempty"`
	Editing   *string `toml:"editing,omitempty" yaml:"editing,omitempty" json:"editing,omitempty"`
	Accent    *string `toml:"accent,omitempty" yaml:"accent,omitempty" json:"accent,omitempty"`
	Muted     *string `toml:"muted,omitempty" yaml:"muted,omitempty" json:"muted,omitempty"`
}

// LogConfig configures the diagnostic log file.
type LogConfig struct {
	Level *string `toml:"level,omitempty" yaml:"level,omitempty" json:"level,omitempty"`
	File  *string `toml:"file,omitempty" yaml:"file,omitempty" json:"file,omitempty"`
}

type format int

const (
	formatTOML format = iota
	formatYAML
	formatJSON
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".json":
		return formatJSON
	default:
		return formatTOML
	}
}

// LoadConfig reads a config from the given path, choosing the decoder by
// extension. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg FileConfig
	switch formatFor(path) {
	case formatYAML:
		err = yaml.Unmarshal(data, &cfg)
	case formatJSON:
		err = json.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Encode serializes cfg in the format matching path.
func Encode(path string, cfg FileConfig) ([]byte, error) {
	switch formatFor(path) {
	case formatYAML:
		return yaml.Marshal(cfg)
	case formatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// SaveConfig writes cfg to path atomically, creating parent directories.
func SaveConfig(path string, cfg FileConfig) error {
	data, err := Encode(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Settings merges the configured defaults over the built-in ones and clamps
// invalid values.
func (c FileConfig) Settings() model.Settings {
	s := model.DefaultSettings()
	d := c.Defaults
	if d.Mode != nil {
		s.Mode = strings.ToLower(strings.TrimSpace(*d.Mode))
	}
	if d.Text != nil {
		s.Text = strings.TrimSpace(*d.Text)
	}
	if d.Duration != nil {
		s.Duration = *d.Duration
	}
	if d.Count != nil {
		s.Count = *d.Count
	}
	return s.Normalize()
}

// WithSettings returns a copy of c whose defaults are set from s.
func (c FileConfig) WithSettings(s model.Settings) FileConfig {
	mode, text, duration, count := s.Mode, s.Text, s.Duration, s.Count
	c.Defaults = DefaultsConfig{
		Mode:     &mode,
		Text:     &text,
		Duration: &duration,
		Count:    &count,
	}
	return c
}
