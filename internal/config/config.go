// Package config provides YAML configuration for the planner host.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"proximity-planner/pkg/geo"
	"proximity-planner/pkg/graph"
)

// Layout kinds.
const (
	LayoutScatter = "scatter"
	LayoutGrid    = "grid"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full planner configuration.
type Config struct {
	Seed     int64          `yaml:"seed"`
	Layout   LayoutConfig   `yaml:"layout"`
	Graph    GraphConfig    `yaml:"graph"`
	Follower FollowerConfig `yaml:"follower"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// LayoutConfig selects how node sets are generated.
type LayoutConfig struct {
	Kind        string       `yaml:"kind"`
	Count       int          `yaml:"count"`
	MaxAttempts int          `yaml:"max_attempts"`
	Region      RegionConfig `yaml:"region"`
	Grid        GridConfig   `yaml:"grid"`
}

// RegionConfig is the rectangle random scatter samples from.
type RegionConfig struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// GridConfig describes a regular lattice.
type GridConfig struct {
	Cols    int     `yaml:"cols"`
	Rows    int     `yaml:"rows"`
	Spacing float64 `yaml:"spacing"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

// GraphConfig controls graph construction.
type GraphConfig struct {
	K            int    `yaml:"k"`
	UseIndex     bool   `yaml:"use_index"`
	ObstaclesDir string `yaml:"obstacles_dir"` // directory of *.geojson files
}

// FollowerConfig controls the tick loop.
type FollowerConfig struct {
	TickInterval        time.Duration `yaml:"tick_interval"`
	RegenerateOnExhaust bool          `yaml:"regenerate_on_exhaust"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	switch c.Layout.Kind {
	case LayoutScatter:
		if c.Layout.Count < 2 {
			return fmt.Errorf("%w: layout.count must be at least 2, got %d", ErrInvalidConfig, c.Layout.Count)
		}
		r := c.Layout.Region
		if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
			return fmt.Errorf("%w: layout.region is empty", ErrInvalidConfig)
		}
	case LayoutGrid:
		g := c.Layout.Grid
		if g.Cols*g.Rows < 2 || g.Cols <= 0 || g.Rows <= 0 {
			return fmt.Errorf("%w: layout.grid needs at least 2 cells, got %dx%d", ErrInvalidConfig, g.Cols, g.Rows)
		}
		if g.Spacing <= 0 {
			return fmt.Errorf("%w: layout.grid.spacing must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown layout.kind %q", ErrInvalidConfig, c.Layout.Kind)
	}

	if c.Graph.K < 1 {
		return fmt.Errorf("%w: graph.k must be at least 1, got %d", ErrInvalidConfig, c.Graph.K)
	}
	if c.Follower.TickInterval <= 0 {
		return fmt.Errorf("%w: follower.tick_interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// BuildLayout turns the layout section into a graph.Layout.
func (c Config) BuildLayout(obstacles *geo.ObstacleIndex) graph.Layout {
	if c.Layout.Kind == LayoutGrid {
		g := c.Layout.Grid
		return graph.GridLayout{
			Cols:      g.Cols,
			Rows:      g.Rows,
			Spacing:   g.Spacing,
			Origin:    orb.Point{g.OriginX, g.OriginY},
			Obstacles: obstacles,
		}
	}

	r := c.Layout.Region
	return graph.ScatterLayout{
		Count:       c.Layout.Count,
		Region:      orb.Bound{Min: orb.Point{r.MinX, r.MinY}, Max: orb.Point{r.MaxX, r.MaxY}},
		Obstacles:   obstacles,
		MaxAttempts: c.Layout.MaxAttempts,
	}
}

// BuildBuilder turns the graph section into a graph.Builder.
func (c Config) BuildBuilder(obstacles *geo.ObstacleIndex) graph.Builder {
	return graph.Builder{
		K:         c.Graph.K,
		UseIndex:  c.Graph.UseIndex,
		Obstacles: obstacles,
	}
}
