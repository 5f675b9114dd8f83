package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Camera.Distance != 5.0 {
		t.Errorf("expected camera distance 5.0, got %f", cfg.Camera.Distance)
	}
	if cfg.Camera.MaxPitch != 85.0 {
		t.Errorf("expected max pitch 85, got %f", cfg.Camera.MaxPitch)
	}
	if cfg.Camera.MinDistance != 1.0 || cfg.Camera.MaxDistance != 5.0 {
		t.Errorf("expected distance bounds [1, 5], got [%f, %f]",
			cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}

	if cfg.Highlight.DurationMs != 1000 {
		t.Errorf("expected highlight duration 1000ms, got %d", cfg.Highlight.DurationMs)
	}
	if cfg.Highlight.Color != [3]float32{1, 0, 0} {
		t.Errorf("expected red highlight, got %v", cfg.Highlight.Color)
	}
	if cfg.Highlight.MeshColor != [3]float32{0, 0, 1} {
		t.Errorf("expected blue mesh color, got %v", cfg.Highlight.MeshColor)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
camera:
  max_distance: 12.5
highlight:
  duration_ms: 2500
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Camera.MaxDistance != 12.5 {
		t.Errorf("expected max distance 12.5, got %f", cfg.Camera.MaxDistance)
	}
	if cfg.Highlight.DurationMs != 2500 {
		t.Errorf("expected duration 2500, got %d", cfg.Highlight.DurationMs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}

	// Untouched values keep their defaults.
	if cfg.Camera.Distance != 5.0 {
		t.Errorf("expected default camera distance, got %f", cfg.Camera.Distance)
	}
	if !cfg.Highlight.ShowEdges {
		t.Error("expected show_edges default true")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Graphics.Width != 800 {
		t.Errorf("expected defaults, got width %d", cfg.Graphics.Width)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(configPath); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 1024
	cfg.Camera.Heading = 90
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Graphics.Width != 1024 {
		t.Errorf("round-trip width = %d, want 1024", loaded.Graphics.Width)
	}
	if loaded.Camera.Heading != 90 {
		t.Errorf("round-trip heading = %f, want 90", loaded.Camera.Heading)
	}
}
