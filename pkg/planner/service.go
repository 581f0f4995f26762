// Package planner owns a roadmap and an agent walking it. A Service replaces
// free-standing node/graph/path state with one object driven by ticks.
package planner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"proximity-planner/pkg/astar"
	"proximity-planner/pkg/follow"
	"proximity-planner/pkg/graph"
)

// Config describes how a Service builds and rebuilds its roadmap.
type Config struct {
	Layout  graph.Layout
	Builder graph.Builder

	// RegenerateOnExhaust rebuilds the node set every time the agent reaches
	// its goal. Otherwise the same graph is reused with a new goal.
	RegenerateOnExhaust bool

	// Seed for node scatter and endpoint selection; 0 uses the clock.
	Seed int64
}

// TickResult reports what one tick did.
type TickResult struct {
	Event       follow.Event
	Replanned   bool
	Regenerated bool
	Found       bool // meaningful when Replanned
	Start       int
	Goal        int
}

// Service holds nodes, graph and follower. It is not safe for concurrent
// use; a single loop owns it and mutates it only between ticks.
type Service struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	nodes    []graph.Node
	graph    *graph.Graph
	follower *follow.Follower

	start, goal int
	agent       orb.Point
	hasAgent    bool
	generation  int
}

// New creates a service and performs the initial regenerate.
func New(cfg Config, logger *log.Logger) (*Service, error) {
	if cfg.Layout == nil {
		return nil, fmt.Errorf("%w: no layout configured", graph.ErrInvalidLayout)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Builder.Logger == nil {
		cfg.Builder.Logger = logger
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Service{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   logger,
		follower: follow.New(nil),
	}

	if _, err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Regenerate replaces the node set and graph, picks a new route and
// installs it. The agent is re-anchored to the node nearest its last
// waypoint when it has one.
func (s *Service) Regenerate() (Snapshot, error) {
	nodes, g, err := BuildRoadmap(s.cfg.Layout, s.cfg.Builder, s.rng)
	if err != nil {
		return Snapshot{}, err
	}

	var start, goal int
	if s.hasAgent {
		start, _ = g.Nearest(s.agent)
		goal, err = SelectGoal(nodes, start, s.rng)
	} else {
		start, goal, err = SelectEndpoints(nodes, s.rng)
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap, err := planSnapshot(nodes, g, start, goal)
	if err != nil {
		return Snapshot{}, err
	}

	s.nodes = snap.Nodes
	s.graph = snap.Graph
	s.generation++

	s.logger.Info("roadmap regenerated",
		"generation", s.generation,
		"nodes", len(s.nodes),
		"edges", s.graph.EdgeCount(),
		"start", snap.Start,
		"goal", snap.Goal,
		"found", snap.Result.Found)

	s.install(snap.Start, snap.Goal, snap.Result)
	return snap, nil
}

// Plan searches from start to goal on the current graph and installs the
// result. A missing route installs an empty path and is not an error.
func (s *Service) Plan(start, goal int) (astar.Result, error) {
	if start == goal {
		return astar.Result{}, fmt.Errorf("plan %d -> %d: %w", start, goal, ErrDegenerateSelection)
	}

	res, err := astar.FindPath(s.graph, start, goal)
	if err != nil {
		return astar.Result{}, fmt.Errorf("plan %d -> %d: %w", start, goal, err)
	}

	s.install(start, goal, res)
	return res, nil
}

// Tick advances the agent by one waypoint. When the path is exhausted it
// replans (and regenerates, if configured) so the next tick moves again.
func (s *Service) Tick() (TickResult, error) {
	ev := s.follower.Tick()
	out := TickResult{Event: ev, Start: s.start, Goal: s.goal}

	switch ev.Kind {
	case follow.EventWaypoint:
		s.agent = ev.Waypoint.Pos
		s.hasAgent = true
		s.logger.Debug("waypoint", "node", ev.Waypoint.Node, "index", ev.Waypoint.Index,
			"x", ev.Waypoint.Pos[0], "y", ev.Waypoint.Pos[1])

	case follow.EventExhausted:
		s.logger.Debug("path exhausted", "start", s.start, "goal", s.goal)

		var res astar.Result
		var err error
		if s.cfg.RegenerateOnExhaust {
			var snap Snapshot
			snap, err = s.Regenerate()
			res = snap.Result
		} else {
			res, err = s.replan()
		}
		if err != nil {
			// An empty path exhausts on the next tick, which retries.
			s.logger.Warn("replan failed, retrying next tick", "error", err)
			s.follower.Install(nil, nil)
			return out, err
		}

		out.Replanned = true
		out.Regenerated = s.cfg.RegenerateOnExhaust
		out.Found = res.Found
		out.Start, out.Goal = s.start, s.goal
	}

	return out, nil
}

// replan keeps the graph and sends the agent from where it stands to a new
// random goal.
func (s *Service) replan() (astar.Result, error) {
	start := s.goal
	if s.hasAgent {
		start, _ = s.graph.Nearest(s.agent)
	}
	if !s.graph.Has(start) {
		start = s.nodes[s.rng.Intn(len(s.nodes))].ID
	}

	goal, err := SelectGoal(s.nodes, start, s.rng)
	if err != nil {
		return astar.Result{}, err
	}
	return s.Plan(start, goal)
}

func (s *Service) install(start, goal int, res astar.Result) {
	if !res.Found {
		s.logger.Warn("no path", "start", start, "goal", goal, "explored", res.Explored)
	} else {
		s.logger.Debug("path found", "start", start, "goal", goal,
			"waypoints", len(res.Path), "cost", res.Cost, "explored", res.Explored)
	}
	s.start, s.goal = start, goal
	s.follower.Install(res.Path, s.graph.Positions)
}

// Run ticks the service every interval until ctx is done or fn returns
// false. fn may be nil.
func (s *Service) Run(ctx context.Context, interval time.Duration, fn func(TickResult) bool) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			res, err := s.Tick()
			if err != nil {
				return err
			}
			if fn != nil && !fn(res) {
				return nil
			}
		}
	}
}

// Graph returns the current roadmap.
func (s *Service) Graph() *graph.Graph { return s.graph }

// Nodes returns the current node set.
func (s *Service) Nodes() []graph.Node { return s.nodes }

// Follower exposes the follower for inspection.
func (s *Service) Follower() *follow.Follower { return s.follower }

// Route returns the endpoints of the installed path.
func (s *Service) Route() (start, goal int) { return s.start, s.goal }

// Generation counts regenerates since creation.
func (s *Service) Generation() int { return s.generation }
