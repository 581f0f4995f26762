// Package geo holds the planar geometry used by the roadmap builder: segment
// tests against obstacle polygons and R-tree indexes over nodes and obstacles.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Segment is a straight line between two points
type Segment struct {
	P1, P2 orb.Point
}

// Bound returns the axis-aligned bounding box of the segment.
func (s Segment) Bound() orb.Bound {
	return orb.MultiPoint{s.P1, s.P2}.Bound()
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() orb.Point {
	return orb.Point{(s.P1[0] + s.P2[0]) / 2, (s.P1[1] + s.P2[1]) / 2}
}

// Intersects checks if two segments cross. Segments that only share an
// endpoint are not considered intersecting.
func (s Segment) Intersects(other Segment) bool {
	p1, p2 := s.P1, s.P2
	p3, p4 := other.P1, other.P2

	if p1 == p3 || p1 == p4 || p2 == p3 || p2 == p4 {
		return false
	}

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// CrossesPolygon checks if the segment intersects any ring edge of the polygon
func (s Segment) CrossesPolygon(poly orb.Polygon) bool {
	for _, ring := range poly {
		n := len(ring)
		for i := 0; i < n; i++ {
			edge := Segment{P1: ring[i], P2: ring[(i+1)%n]}
			if edge.P1 == edge.P2 {
				continue
			}
			if s.Intersects(edge) {
				return true
			}
		}
	}
	return false
}

// Blocked reports whether a straight move from a to b touches the polygon:
// it crosses the boundary, starts or ends inside, or runs entirely inside.
func Blocked(a, b orb.Point, poly orb.Polygon) bool {
	seg := Segment{P1: a, P2: b}
	if seg.CrossesPolygon(poly) {
		return true
	}
	if planar.PolygonContains(poly, a) || planar.PolygonContains(poly, b) {
		return true
	}
	return planar.PolygonContains(poly, seg.Midpoint())
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment checks if point q lies within the bounding box of segment pr
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}
