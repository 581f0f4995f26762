package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const gridConfig = `
seed: 7
layout:
  kind: grid
  grid:
    cols: 4
    rows: 4
    spacing: 10
    origin_x: 0
    origin_y: 0
graph:
  k: 4
  use_index: false
follower:
  regenerate_on_exhaust: false
log:
  level: error
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.yaml")
	if err := os.WriteFile(path, []byte(gridConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagConfig, flagSeed, flagLogLevel = "", 0, ""
	flagStart, flagGoal = -1, -1
	flagTicks, flagInterval = 0, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "--config", writeConfig(t))
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	for _, want := range []string{"Layout:            grid", "Nodes:             16", "Neighbours (k):    4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRouteCommand(t *testing.T) {
	out, err := execute(t, "route", "--config", writeConfig(t), "--start", "0", "--goal", "15")
	if err != nil {
		t.Fatalf("route error: %v", err)
	}
	if !strings.Contains(out, "Route:   0 -> 15") {
		t.Errorf("output missing route header:\n%s", out)
	}
	if strings.Contains(out, "No path found.") {
		t.Errorf("expected a path across the grid:\n%s", out)
	}
}

func TestRouteCommandRequiresBothEnds(t *testing.T) {
	if _, err := execute(t, "route", "--config", writeConfig(t), "--start", "0"); err == nil {
		t.Error("expected error when only --start is given")
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--config", writeConfig(t), "--ticks", "5", "--interval", "1ms")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Errorf("got %d lines, expected 5:\n%s", len(lines), out)
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			_, err := newLogger(tt.level)
			if (err != nil) != tt.wantErr {
				t.Errorf("newLogger(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}
