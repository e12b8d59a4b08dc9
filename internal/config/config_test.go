package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.Model != "scene.glb" {
		t.Errorf("expected model scene.glb, got %s", cfg.Scene.Model)
	}
	if cfg.Scene.ClearColor[3] != 1.0 {
		t.Errorf("expected opaque clear color, got alpha %f", cfg.Scene.ClearColor[3])
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  vsync: false

scene:
  model: assets/duck.glb
  clear_color: [0.2, 0.3, 0.4, 1.0]

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("width = %d, want 1920", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("height = %d, want 1080", cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("vsync should be overridden to false")
	}
	if cfg.Scene.Model != "assets/duck.glb" {
		t.Errorf("model = %s, want assets/duck.glb", cfg.Scene.Model)
	}
	if cfg.Scene.ClearColor[0] != 0.2 {
		t.Errorf("clear_color[0] = %f, want 0.2", cfg.Scene.ClearColor[0])
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s, want debug", cfg.Logging.Level)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Logging.LogFile != "" {
		t.Errorf("log file should keep default, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
