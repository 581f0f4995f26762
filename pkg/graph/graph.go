// Package graph builds k-nearest proximity graphs over points in the plane.
//
// Nodes are referred to by integer id everywhere; positions live in a
// separate lookup so graphs, search state and paths are plain id sequences.
package graph

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"proximity-planner/pkg/geo"
)

// Node is a point in the plane with a stable id.
type Node struct {
	ID  int
	Pos orb.Point
}

// Positions maps node id to location.
type Positions map[int]orb.Point

// PositionsOf collects the positions of a node set.
func PositionsOf(nodes []Node) Positions {
	pos := make(Positions, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n.Pos
	}
	return pos
}

// Edge is a directed connection to a neighbor with its straight-line cost.
type Edge struct {
	To   int
	Cost float64
}

// Graph is a proximity graph. Edges[id] lists the neighbors of id ascending
// by cost. Neighbor lists are computed independently per node, so A listing
// B does not imply B lists A.
type Graph struct {
	Positions Positions
	Edges     map[int][]Edge
	K         int // effective neighbor count after clamping

	index *geo.NodeIndex
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Positions)
}

// Neighbors returns the outgoing edges of id.
func (g *Graph) Neighbors(id int) []Edge {
	return g.Edges[id]
}

// Position returns the location of id.
func (g *Graph) Position(id int) (orb.Point, bool) {
	p, ok := g.Positions[id]
	return p, ok
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id int) bool {
	_, ok := g.Positions[id]
	return ok
}

// Edge returns the cost of the edge from -> to, if present.
func (g *Graph) Edge(from, to int) (float64, bool) {
	for _, e := range g.Edges[from] {
		if e.To == to {
			return e.Cost, true
		}
	}
	return 0, false
}

// IDs returns all node ids in ascending order.
func (g *Graph) IDs() []int {
	ids := make([]int, 0, len(g.Positions))
	for id := range g.Positions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.Edges {
		n += len(edges)
	}
	return n
}

// AsymmetricEdges counts directed edges a -> b with no matching b -> a.
func (g *Graph) AsymmetricEdges() int {
	n := 0
	for from, edges := range g.Edges {
		for _, e := range edges {
			if _, ok := g.Edge(e.To, from); !ok {
				n++
			}
		}
	}
	return n
}

// Nearest finds the node closest to p. It returns -1 for an empty graph.
func (g *Graph) Nearest(p orb.Point) (int, float64) {
	if len(g.Positions) == 0 {
		return -1, math.MaxFloat64
	}

	if g.index != nil {
		if found := g.index.Nearest(p, 1); len(found) > 0 {
			return found[0].ID, found[0].Dist
		}
	}

	nearestID := -1
	minDist := math.MaxFloat64
	for _, id := range g.IDs() {
		if d := geo.Distance(p, g.Positions[id]); d < minDist {
			minDist = d
			nearestID = id
		}
	}
	return nearestID, minDist
}
