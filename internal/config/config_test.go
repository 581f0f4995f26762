package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"proximity-planner/pkg/graph"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestParseOverridesKeepDefaults(t *testing.T) {
	data := []byte(`
layout:
  kind: grid
graph:
  k: 6
follower:
  tick_interval: 250ms
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Layout.Kind != LayoutGrid {
		t.Errorf("Layout.Kind = %q, expected grid", cfg.Layout.Kind)
	}
	if cfg.Graph.K != 6 {
		t.Errorf("Graph.K = %d, expected 6", cfg.Graph.K)
	}
	if cfg.Follower.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 250ms", cfg.Follower.TickInterval)
	}
	if cfg.Layout.Grid.Cols != 10 || !cfg.Graph.UseIndex {
		t.Error("omitted keys should keep their defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown layout", func(c *Config) { c.Layout.Kind = "hex" }},
		{"scatter count", func(c *Config) { c.Layout.Count = 1 }},
		{"empty region", func(c *Config) { c.Layout.Region.MaxX = c.Layout.Region.MinX }},
		{"grid too small", func(c *Config) { c.Layout.Kind = LayoutGrid; c.Layout.Grid.Cols = 1; c.Layout.Grid.Rows = 1 }},
		{"grid spacing", func(c *Config) { c.Layout.Kind = LayoutGrid; c.Layout.Grid.Spacing = 0 }},
		{"zero k", func(c *Config) { c.Graph.K = 0 }},
		{"zero interval", func(c *Config) { c.Follower.TickInterval = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("layout: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("seed: 42\ngraph:\n  k: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if used != path {
		t.Errorf("Load() used %q, expected %q", used, path)
	}
	if cfg.Seed != 42 || cfg.Graph.K != 3 {
		t.Errorf("Load() = seed %d k %d, expected 42 and 3", cfg.Seed, cfg.Graph.K)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if used != "" {
		t.Errorf("Load() used %q, expected embedded default", used)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("Load() without files should return the defaults")
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "proximity-planner")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "planner.yaml")
	if err := os.WriteFile(path, []byte("graph:\n  k: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, used, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if used != path || cfg.Graph.K != 7 {
		t.Errorf("Load() = (k %d, %q), expected (7, %q)", cfg.Graph.K, used, path)
	}
}

func TestBuildLayout(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := cfg.BuildLayout(nil).(graph.ScatterLayout); !ok {
		t.Error("expected scatter layout by default")
	}

	cfg.Layout.Kind = LayoutGrid
	grid, ok := cfg.BuildLayout(nil).(graph.GridLayout)
	if !ok {
		t.Fatal("expected grid layout")
	}
	if grid.Cols != 10 || grid.Rows != 8 || grid.Spacing != 70 {
		t.Errorf("grid = %+v", grid)
	}

	b := cfg.BuildBuilder(nil)
	if b.K != 4 || !b.UseIndex {
		t.Errorf("builder = %+v", b)
	}
}
