package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/planner.yaml
var defaultPlannerYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlannerYAML
}

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/planner.yaml.
func DefaultConfig() Config {
	return Config{
		Seed: 0,
		Layout: LayoutConfig{
			Kind:  LayoutScatter,
			Count: 60,
			Region: RegionConfig{
				MinX: 0,
				MinY: 0,
				MaxX: 800,
				MaxY: 600,
			},
			Grid: GridConfig{
				Cols:    10,
				Rows:    8,
				Spacing: 70,
				OriginX: 50,
				OriginY: 50,
			},
		},
		Graph: GraphConfig{
			K:        4,
			UseIndex: true,
		},
		Follower: FollowerConfig{
			TickInterval:        500 * time.Millisecond,
			RegenerateOnExhaust: true,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
