package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"proximity-planner/internal/config"
	"proximity-planner/pkg/geo"
	"proximity-planner/pkg/planner"
)

// env is everything a command needs after flag and config resolution.
type env struct {
	cfg     config.Config
	logger  *log.Logger
	service *planner.Service
}

// setup loads configuration, applies global flag overrides, loads obstacles
// and builds the initial roadmap.
func setup() (*env, error) {
	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Debug("using embedded default config")
	} else {
		logger.Debug("loaded config", "path", path)
	}

	var obstacles *geo.ObstacleIndex
	if cfg.Graph.ObstaclesDir != "" {
		polygons, err := geo.LoadObstacles(cfg.Graph.ObstaclesDir, logger)
		if err != nil {
			return nil, err
		}
		obstacles = geo.NewObstacleIndex(polygons)
	}

	svc, err := planner.New(planner.Config{
		Layout:              cfg.BuildLayout(obstacles),
		Builder:             cfg.BuildBuilder(obstacles),
		RegenerateOnExhaust: cfg.Follower.RegenerateOnExhaust,
		Seed:                cfg.Seed,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, service: svc}, nil
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "planner",
		Level:           lvl,
	}), nil
}
