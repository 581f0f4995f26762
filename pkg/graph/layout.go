package graph

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"

	"proximity-planner/pkg/geo"
)

// ErrInvalidLayout is returned for layouts that cannot produce nodes.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout produces a fresh node set. Ids are assigned 0..n-1.
type Layout interface {
	Generate(rng *rand.Rand) ([]Node, error)
}

// GridLayout places nodes on a regular Cols x Rows lattice starting at
// Origin. Cells covered by an obstacle are left empty.
type GridLayout struct {
	Cols, Rows int
	Spacing    float64
	Origin     orb.Point
	Obstacles  *geo.ObstacleIndex
}

// Generate implements Layout. The rng is unused; grids are deterministic.
func (l GridLayout) Generate(_ *rand.Rand) ([]Node, error) {
	if l.Cols <= 0 || l.Rows <= 0 || l.Spacing <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d spacing %v", ErrInvalidLayout, l.Cols, l.Rows, l.Spacing)
	}

	nodes := make([]Node, 0, l.Cols*l.Rows)
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			p := orb.Point{
				l.Origin[0] + float64(col)*l.Spacing,
				l.Origin[1] + float64(row)*l.Spacing,
			}
			if l.Obstacles.Contains(p) {
				continue
			}
			nodes = append(nodes, Node{ID: len(nodes), Pos: p})
		}
	}
	return nodes, nil
}

// ScatterLayout samples Count points uniformly inside Region, rejecting
// samples that fall inside an obstacle.
type ScatterLayout struct {
	Count     int
	Region    orb.Bound
	Obstacles *geo.ObstacleIndex

	// MaxAttempts bounds rejection sampling. Zero means 10x Count.
	MaxAttempts int
}

// Generate implements Layout. Fewer than Count nodes are returned when the
// attempt budget runs out.
func (l ScatterLayout) Generate(rng *rand.Rand) ([]Node, error) {
	if l.Count <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidLayout, l.Count)
	}
	if l.Region.Max[0] < l.Region.Min[0] || l.Region.Max[1] < l.Region.Min[1] {
		return nil, fmt.Errorf("%w: empty region %v", ErrInvalidLayout, l.Region)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: scatter requires a random source", ErrInvalidLayout)
	}

	maxAttempts := l.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = l.Count * 10
	}

	width := l.Region.Max[0] - l.Region.Min[0]
	height := l.Region.Max[1] - l.Region.Min[1]

	nodes := make([]Node, 0, l.Count)
	for attempts := 0; len(nodes) < l.Count && attempts < maxAttempts; attempts++ {
		p := orb.Point{
			l.Region.Min[0] + rng.Float64()*width,
			l.Region.Min[1] + rng.Float64()*height,
		}
		if l.Obstacles.Contains(p) {
			continue
		}
		nodes = append(nodes, Node{ID: len(nodes), Pos: p})
	}
	return nodes, nil
}
