package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigCreatesDefaultOnFirstRun(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cryptanalyst-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.yaml")
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Engine.Language != "auto" {
		t.Errorf("Engine.Language = %q, want %q", cfg.Engine.Language, "auto")
	}
	if !cfg.Engine.TryMultiple {
		t.Error("Engine.TryMultiple = false, want true")
	}
	if cfg.Engine.MaxTimeMS != 60000 {
		t.Errorf("Engine.MaxTimeMS = %d, want 60000", cfg.Engine.MaxTimeMS)
	}
	if !cfg.Engine.UseDictionary {
		t.Error("Engine.UseDictionary = false, want true")
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %q, want %q", cfg.General.LogLevel, "info")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("LoadConfig did not persist the default config file")
	}
}

func TestSaveConfigRoundTrips(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cryptanalyst-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfg := createDefaultConfig()
	cfg.Engine.Language = "de"
	cfg.Engine.MaxTimeMS = 5000
	configPath := filepath.Join(tempDir, "config.yaml")

	if err := SaveConfig(configPath, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Engine.Language != "de" {
		t.Errorf("Engine.Language = %q, want %q", loaded.Engine.Language, "de")
	}
	if loaded.Engine.MaxTimeMS != 5000 {
		t.Errorf("Engine.MaxTimeMS = %d, want 5000", loaded.Engine.MaxTimeMS)
	}
}

func TestLoadConfigParsesExistingFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "cryptanalyst-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.yaml")
	raw := "engine:\n  language: fr\n  tryMultiple: false\n  maxTimeMs: 1000\n  useDictionary: false\ngeneral:\n  logLevel: debug\n  debug: true\n"
	if err := os.WriteFile(configPath, []byte(raw), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Engine.Language != "fr" {
		t.Errorf("Engine.Language = %q, want %q", cfg.Engine.Language, "fr")
	}
	if cfg.Engine.TryMultiple {
		t.Error("Engine.TryMultiple = true, want false")
	}
	if !cfg.General.Debug {
		t.Error("General.Debug = false, want true")
	}
}
