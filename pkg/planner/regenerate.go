package planner

import (
	"errors"
	"fmt"
	"math/rand"

	"proximity-planner/pkg/astar"
	"proximity-planner/pkg/graph"
)

// ErrDegenerateSelection is returned when start and goal are the same node.
var ErrDegenerateSelection = errors.New("start and goal resolve to the same node")

// Snapshot is everything one regenerate produces.
type Snapshot struct {
	Nodes  []graph.Node
	Graph  *graph.Graph
	Start  int
	Goal   int
	Result astar.Result
}

// Regenerate lays out a fresh node set, connects it and plans a route
// between two distinct random nodes. A missing route is reported through
// Snapshot.Result, not as an error.
func Regenerate(layout graph.Layout, builder graph.Builder, rng *rand.Rand) (Snapshot, error) {
	nodes, g, err := BuildRoadmap(layout, builder, rng)
	if err != nil {
		return Snapshot{}, err
	}

	start, goal, err := SelectEndpoints(nodes, rng)
	if err != nil {
		return Snapshot{}, err
	}

	return planSnapshot(nodes, g, start, goal)
}

// BuildRoadmap lays out a fresh node set and connects it. rng is only used
// by the layout.
func BuildRoadmap(layout graph.Layout, builder graph.Builder, rng *rand.Rand) ([]graph.Node, *graph.Graph, error) {
	nodes, err := layout.Generate(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("generate nodes: %w", err)
	}

	g, err := builder.Build(nodes)
	if err != nil {
		return nil, nil, fmt.Errorf("build graph: %w", err)
	}
	return nodes, g, nil
}

func planSnapshot(nodes []graph.Node, g *graph.Graph, start, goal int) (Snapshot, error) {
	res, err := astar.FindPath(g, start, goal)
	if err != nil {
		return Snapshot{}, fmt.Errorf("find path: %w", err)
	}
	return Snapshot{Nodes: nodes, Graph: g, Start: start, Goal: goal, Result: res}, nil
}

// SelectEndpoints picks two distinct nodes at random.
func SelectEndpoints(nodes []graph.Node, rng *rand.Rand) (start, goal int, err error) {
	if len(nodes) < 2 {
		return -1, -1, fmt.Errorf("select endpoints: %w: got %d", graph.ErrTooFewNodes, len(nodes))
	}
	start = nodes[rng.Intn(len(nodes))].ID
	goal, err = SelectGoal(nodes, start, rng)
	return start, goal, err
}

// SelectGoal draws nodes until one differs from start. Draws are bounded by
// the node count; if all of them hit start the first other node is used.
func SelectGoal(nodes []graph.Node, start int, rng *rand.Rand) (int, error) {
	if len(nodes) < 2 {
		return -1, fmt.Errorf("select goal: %w: got %d", graph.ErrTooFewNodes, len(nodes))
	}

	for i := 0; i < len(nodes); i++ {
		if id := nodes[rng.Intn(len(nodes))].ID; id != start {
			return id, nil
		}
	}
	for _, n := range nodes {
		if n.ID != start {
			return n.ID, nil
		}
	}
	return -1, fmt.Errorf("select goal: %w", ErrDegenerateSelection)
}
