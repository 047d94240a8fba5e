package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".news-verifier"

//go:embed config/settings.yaml
var defaultSettings string

// Settings represents the YAML configuration structure
type Settings struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Engine struct {
		Provider       string   `yaml:"provider"`
		Models         []string `yaml:"models"`
		MaxTokens      int      `yaml:"max_tokens"`
		Temperature    float64  `yaml:"temperature"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
	} `yaml:"engine"`
	Extractor struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		MaxChars       int `yaml:"max_chars"`
	} `yaml:"extractor"`
	Sources SourceList `yaml:"sources"`
}

// EngineTimeout is the client-side deadline for a single model call.
func (s *Settings) EngineTimeout() time.Duration {
	if s.Engine.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.Engine.TimeoutSeconds) * time.Second
}

// ExtractorTimeout is the deadline for a single article fetch.
func (s *Settings) ExtractorTimeout() time.Duration {
	if s.Extractor.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.Extractor.TimeoutSeconds) * time.Second
}

// TrustedSources returns the configured source list, falling back to the
// built-in defaults when the settings file does not override it.
func (s *Settings) TrustedSources() SourceList {
	if len(s.Sources) > 0 {
		return s.Sources
	}
	return defaultTrustedSources
}

// getConfigPath returns the path to a config file in the .news-verifier directory
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// loadSettings loads settings from YAML file with fallback to embedded defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		// Missing file is fine: parse the embedded defaults instead.
		data = []byte(defaultSettings)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	if settings.Server.Addr == "" {
		settings.Server.Addr = ":8080"
	}
	if settings.Engine.Provider == "" {
		settings.Engine.Provider = "openai"
	}
	if settings.Engine.MaxTokens <= 0 {
		settings.Engine.MaxTokens = 2000
	}
	if settings.Extractor.MaxChars <= 0 {
		settings.Extractor.MaxChars = 2500
	}

	return &settings, nil
}

// loadSettingsRequired loads settings from an explicitly given path,
// failing if the file doesn't exist.
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	if _, err := os.Stat(settingsPath); err != nil {
		return nil, fmt.Errorf("settings file missing: %w", err)
	}
	return loadSettings(settingsPath)
}

// ensureConfigExists creates the config directory and writes the default
// settings.yaml on first run so users have something to edit.
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsPath := getConfigPath("settings.yaml")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := os.WriteFile(settingsPath, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
