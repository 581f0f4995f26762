// Package astar finds shortest paths over proximity graphs.
package astar

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"proximity-planner/pkg/geo"
	"proximity-planner/pkg/graph"
)

// ErrUnknownNode is returned when start or goal is not a node of the graph.
var ErrUnknownNode = errors.New("unknown node")

// Result is the outcome of a search. Found is false when the goal cannot be
// reached; Path is then empty.
type Result struct {
	Path     graph.Path
	Cost     float64
	Found    bool
	Explored int // nodes expanded
}

// searchState is the per-node bookkeeping of one search.
type searchState struct {
	g         float64
	f         float64
	parent    int
	hasParent bool
}

// FindPath runs A* from start to goal using straight-line distance to the
// goal as heuristic. Edge costs are straight-line distances too, so the
// heuristic never overestimates and the first time goal is popped its cost is
// optimal. The graph is not modified.
func FindPath(g *graph.Graph, start, goal int) (Result, error) {
	if g == nil {
		return Result{}, fmt.Errorf("%w: nil graph", ErrUnknownNode)
	}
	goalPos, ok := g.Position(goal)
	if !ok {
		return Result{}, fmt.Errorf("%w: goal %d", ErrUnknownNode, goal)
	}
	startPos, ok := g.Position(start)
	if !ok {
		return Result{}, fmt.Errorf("%w: start %d", ErrUnknownNode, start)
	}

	h := func(p orb.Point) float64 {
		return geo.Distance(p, goalPos)
	}

	state := map[int]searchState{
		start: {g: 0, f: h(startPos)},
	}
	closed := make(map[int]bool)

	open := &openSet{}
	heap.Push(open, entry{id: start, g: 0, f: state[start].f})

	explored := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(entry)
		if closed[current.id] || current.g > state[current.id].g {
			continue
		}
		explored++

		if current.id == goal {
			return Result{
				Path:     reconstructPath(state, start, goal),
				Cost:     current.g,
				Found:    true,
				Explored: explored,
			}, nil
		}

		closed[current.id] = true

		for _, edge := range g.Neighbors(current.id) {
			if closed[edge.To] {
				continue
			}

			tentativeG := current.g + edge.Cost
			if tentativeG >= costSoFar(state, edge.To) {
				continue
			}

			f := tentativeG + h(g.Positions[edge.To])
			state[edge.To] = searchState{
				g:         tentativeG,
				f:         f,
				parent:    current.id,
				hasParent: true,
			}
			heap.Push(open, entry{id: edge.To, g: tentativeG, f: f})
		}
	}

	return Result{Explored: explored}, nil
}

// costSoFar returns the best known cost to id, +Inf if unseen.
func costSoFar(state map[int]searchState, id int) float64 {
	if s, ok := state[id]; ok {
		return s.g
	}
	return math.Inf(1)
}

// reconstructPath follows parent links from goal back to start and reverses.
func reconstructPath(state map[int]searchState, start, goal int) graph.Path {
	path := graph.Path{goal}
	for cur := goal; cur != start; {
		s := state[cur]
		if !s.hasParent {
			return nil
		}
		cur = s.parent
		path = append(path, cur)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
