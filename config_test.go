package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettingsEmbeddedDefaults(t *testing.T) {
	settings, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadSettings() error: %v", err)
	}

	if settings.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", settings.Server.Addr)
	}
	if settings.Engine.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", settings.Engine.Provider)
	}
	if len(settings.Engine.Models) == 0 {
		t.Error("embedded defaults should list candidate models")
	}
	if settings.Engine.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", settings.Engine.MaxTokens)
	}
	if settings.Extractor.MaxChars != 2500 {
		t.Errorf("MaxChars = %d, want 2500", settings.Extractor.MaxChars)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `server:
  addr: ":9090"
engine:
  provider: anthropic
  models:
    - claude-3-5-haiku-20241022
  max_tokens: 1000
  temperature: 0.5
  timeout_seconds: 30
extractor:
  timeout_seconds: 10
  max_chars: 1500
sources:
  - name: Example Outlet
    url: https://example.com
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := loadSettings(path)
	if err != nil {
		t.Fatalf("loadSettings() error: %v", err)
	}

	if settings.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", settings.Server.Addr)
	}
	if settings.Engine.Provider != "anthropic" {
		t.Errorf("Provider = %q, want anthropic", settings.Engine.Provider)
	}
	if settings.EngineTimeout() != 30*time.Second {
		t.Errorf("EngineTimeout() = %v, want 30s", settings.EngineTimeout())
	}
	if settings.ExtractorTimeout() != 10*time.Second {
		t.Errorf("ExtractorTimeout() = %v, want 10s", settings.ExtractorTimeout())
	}
	if settings.Extractor.MaxChars != 1500 {
		t.Errorf("MaxChars = %d, want 1500", settings.Extractor.MaxChars)
	}

	sources := settings.TrustedSources()
	if len(sources) != 1 || sources[0].Name != "Example Outlet" {
		t.Errorf("TrustedSources() = %v, want the configured outlet", sources)
	}
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("engine: [not: valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSettings(path); err == nil {
		t.Error("loadSettings() should fail on malformed YAML")
	}
}

func TestLoadSettingsRequiredMissing(t *testing.T) {
	if _, err := loadSettingsRequired(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("loadSettingsRequired() should fail when the file is absent")
	}
}

func TestSettingsTimeoutDefaults(t *testing.T) {
	var settings Settings
	if settings.EngineTimeout() != 60*time.Second {
		t.Errorf("EngineTimeout() = %v, want 60s", settings.EngineTimeout())
	}
	if settings.ExtractorTimeout() != 15*time.Second {
		t.Errorf("ExtractorTimeout() = %v, want 15s", settings.ExtractorTimeout())
	}
}

func TestTrustedSourcesFallback(t *testing.T) {
	var settings Settings
	sources := settings.TrustedSources()
	if len(sources) != len(defaultTrustedSources) {
		t.Errorf("TrustedSources() count = %d, want %d", len(sources), len(defaultTrustedSources))
	}
}
