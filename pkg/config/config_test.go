package config

import (
	"path/filepath"
	"testing"
)

func TestInitConfigCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Suggest.DefaultMode != "best" {
		t.Fatalf("expected default mode 'best', got %q", cfg.Suggest.DefaultMode)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Server.SocketPath != cfg.Server.SocketPath {
		t.Fatalf("round-tripped config mismatch: %+v vs %+v", loaded.Server, cfg.Server)
	}
}

func TestInitConfigLoadsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	custom := DefaultConfig()
	custom.Suggest.MaxSuggestions = 42
	if err := SaveConfig(custom, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.Suggest.MaxSuggestions != 42 {
		t.Fatalf("expected the on-disk config to be loaded, got %d", cfg.Suggest.MaxSuggestions)
	}
}

func TestConfigUpdate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	mode := "fast"
	timeout := 2000
	if err := cfg.Update(path, &mode, &timeout, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if cfg.Suggest.DefaultMode != "fast" || cfg.Suggest.TimeoutMS != 2000 {
		t.Fatalf("Update did not apply in-memory, got %+v", cfg.Suggest)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if reloaded.Suggest.DefaultMode != "fast" || reloaded.Suggest.TimeoutMS != 2000 {
		t.Fatalf("Update did not persist, got %+v", reloaded.Suggest)
	}
	if reloaded.Suggest.MaxSuggestions != DefaultConfig().Suggest.MaxSuggestions {
		t.Fatalf("Update should leave unspecified fields untouched, got %d", reloaded.Suggest.MaxSuggestions)
	}
}
