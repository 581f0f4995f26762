package graph

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"proximity-planner/pkg/geo"
)

var (
	// ErrTooFewNodes is returned when fewer than two nodes are supplied.
	ErrTooFewNodes = errors.New("graph requires at least two nodes")
	// ErrInvalidK is returned for a neighbor count below one.
	ErrInvalidK = errors.New("neighbor count must be at least 1")
	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("duplicate node id")
)

// Builder connects every node to its K nearest neighbors.
type Builder struct {
	K int

	// UseIndex selects neighbors through an R-tree instead of a full scan.
	UseIndex bool

	// Obstacles, when set, rejects candidate edges whose straight segment
	// touches an obstacle polygon.
	Obstacles *geo.ObstacleIndex

	Logger *log.Logger
}

// Build connects every node to its k nearest neighbors by full scan.
func Build(nodes []Node, k int) (*Graph, error) {
	return Builder{K: k}.Build(nodes)
}

// Build constructs the proximity graph. The input slice is not modified.
func (b Builder) Build(nodes []Node) (*Graph, error) {
	if len(nodes) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewNodes, len(nodes))
	}
	if b.K < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, b.K)
	}

	logger := b.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	positions := make(Positions, len(nodes))
	for _, n := range nodes {
		if _, dup := positions[n.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, n.ID)
		}
		positions[n.ID] = n.Pos
	}

	k := b.K
	if k > len(nodes)-1 {
		k = len(nodes) - 1
	}

	startTime := time.Now()
	graph := &Graph{
		Positions: positions,
		Edges:     make(map[int][]Edge, len(nodes)),
		K:         k,
	}

	if b.UseIndex {
		graph.index = geo.NewNodeIndex()
		for _, n := range nodes {
			graph.index.Insert(n.ID, n.Pos)
		}
	}

	rejected := 0
	for _, n := range nodes {
		var picked []geo.Neighbor
		var dropped int
		if graph.index != nil {
			picked, dropped = b.nearestIndexed(graph.index, n, positions, k)
		} else {
			picked, dropped = b.nearestScan(n, nodes, positions, k)
		}
		rejected += dropped

		edges := make([]Edge, len(picked))
		for i, nb := range picked {
			edges[i] = Edge{To: nb.ID, Cost: nb.Dist}
		}
		graph.Edges[n.ID] = edges
	}

	logger.Debug("proximity graph built",
		"nodes", len(nodes),
		"k", k,
		"edges", graph.EdgeCount(),
		"rejected", rejected,
		"indexed", b.UseIndex,
		"elapsed", time.Since(startTime))

	return graph, nil
}

// nearestScan measures the distance to every other node and keeps the k
// closest eligible ones.
func (b Builder) nearestScan(n Node, nodes []Node, positions Positions, k int) ([]geo.Neighbor, int) {
	candidates := make([]geo.Neighbor, 0, len(nodes)-1)
	for _, other := range nodes {
		if other.ID == n.ID {
			continue
		}
		candidates = append(candidates, geo.Neighbor{ID: other.ID, Dist: geo.Distance(n.Pos, other.Pos)})
	}
	geo.SortNeighbors(candidates)

	picked := make([]geo.Neighbor, 0, k)
	dropped := 0
	for _, c := range candidates {
		if len(picked) == k {
			break
		}
		if b.Obstacles.Blocks(n.Pos, positions[c.ID]) {
			dropped++
			continue
		}
		picked = append(picked, c)
	}
	return picked, dropped
}

// nearestIndexed asks the R-tree for the k+1 closest entries (self included)
// and widens the request while obstacles leave fewer than k usable ones.
func (b Builder) nearestIndexed(ix *geo.NodeIndex, n Node, positions Positions, k int) ([]geo.Neighbor, int) {
	want := k + 1
	for {
		found := ix.Nearest(n.Pos, want)

		picked := make([]geo.Neighbor, 0, k)
		dropped := 0
		for _, c := range found {
			if len(picked) == k {
				break
			}
			if c.ID == n.ID {
				continue
			}
			if b.Obstacles.Blocks(n.Pos, positions[c.ID]) {
				dropped++
				continue
			}
			picked = append(picked, c)
		}

		if len(picked) == k || want >= ix.Len() {
			return picked, dropped
		}
		want *= 2
	}
}
