package graph

import "github.com/paulmach/orb"

// Path is an ordered sequence of node ids from start to goal inclusive.
// An empty path means no route exists.
type Path []int

// Empty reports whether the path holds no nodes.
func (p Path) Empty() bool {
	return len(p) == 0
}

// Start returns the first node, or -1 for an empty path.
func (p Path) Start() int {
	if len(p) == 0 {
		return -1
	}
	return p[0]
}

// Goal returns the last node, or -1 for an empty path.
func (p Path) Goal() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Cost sums the edge weights along the path. It returns false if a step is
// not an edge of g.
func (p Path) Cost(g *Graph) (float64, bool) {
	total := 0.0
	for i := 0; i+1 < len(p); i++ {
		c, ok := g.Edge(p[i], p[i+1])
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

// Positions resolves the path to coordinates.
func (p Path) Positions(g *Graph) []orb.Point {
	points := make([]orb.Point, 0, len(p))
	for _, id := range p {
		points = append(points, g.Positions[id])
	}
	return points
}
