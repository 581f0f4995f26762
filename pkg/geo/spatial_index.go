package geo

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const (
	treeMinChildren = 25
	treeMaxChildren = 50

	// pointTolerance is the half-size of the box a point occupies in the tree.
	pointTolerance = 1e-9

	// tieSlack covers the gap between box and point distances.
	tieSlack = 1e-6
)

// obstacleEntry wraps a polygon for R-tree storage
type obstacleEntry struct {
	polygon orb.Polygon
	bbox    rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ObstacleIndex answers "does this straight move hit an obstacle" without
// testing every polygon. A nil *ObstacleIndex blocks nothing.
type ObstacleIndex struct {
	tree  *rtreego.Rtree
	count int
}

// NewObstacleIndex indexes the given polygons by bounding box. Empty polygons
// are skipped.
func NewObstacleIndex(polygons []orb.Polygon) *ObstacleIndex {
	tree := rtreego.NewTree(2, treeMinChildren, treeMaxChildren)

	count := 0
	for _, polygon := range polygons {
		bbox, ok := boundToRect(polygon.Bound())
		if !ok || len(polygon) == 0 || len(polygon[0]) == 0 {
			continue
		}
		tree.Insert(&obstacleEntry{polygon: polygon, bbox: bbox})
		count++
	}

	return &ObstacleIndex{tree: tree, count: count}
}

// Len returns the number of indexed polygons.
func (ix *ObstacleIndex) Len() int {
	if ix == nil {
		return 0
	}
	return ix.count
}

// Query returns polygons whose bounding box intersects b.
func (ix *ObstacleIndex) Query(b orb.Bound) []orb.Polygon {
	if ix == nil || ix.count == 0 {
		return nil
	}
	rect, ok := boundToRect(b)
	if !ok {
		return nil
	}

	results := ix.tree.SearchIntersect(rect)
	polygons := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		polygons = append(polygons, item.(*obstacleEntry).polygon)
	}
	return polygons
}

// Blocks reports whether the straight move from a to b touches any obstacle.
func (ix *ObstacleIndex) Blocks(a, b orb.Point) bool {
	for _, polygon := range ix.Query(Segment{P1: a, P2: b}.Bound()) {
		if Blocked(a, b, polygon) {
			return true
		}
	}
	return false
}

// Contains reports whether p lies inside any obstacle.
func (ix *ObstacleIndex) Contains(p orb.Point) bool {
	return ix.Blocks(p, p)
}

// Neighbor is a result of a nearest-node query.
type Neighbor struct {
	ID   int
	Dist float64
}

type nodeEntry struct {
	id  int
	pos orb.Point
}

func (e *nodeEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.pos[0], e.pos[1]}.ToRect(pointTolerance)
}

// NodeIndex is an R-tree over node positions for k-nearest queries.
type NodeIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewNodeIndex creates an empty node index.
func NewNodeIndex() *NodeIndex {
	return &NodeIndex{tree: rtreego.NewTree(2, treeMinChildren, treeMaxChildren)}
}

// Insert adds a node position to the index.
func (ix *NodeIndex) Insert(id int, p orb.Point) {
	ix.tree.Insert(&nodeEntry{id: id, pos: p})
	ix.size++
}

// Len returns the number of indexed nodes.
func (ix *NodeIndex) Len() int {
	return ix.size
}

// Nearest returns up to k indexed nodes closest to p, ascending by exact
// Euclidean distance with ties broken by id. A node located at p itself is
// included. Nodes tied with the k-th distance are all considered before the
// cut, so the result matches a full scan.
func (ix *NodeIndex) Nearest(p orb.Point, k int) []Neighbor {
	if k <= 0 || ix.size == 0 {
		return nil
	}
	if k > ix.size {
		k = ix.size
	}

	want := k + 1
	for {
		if want > ix.size {
			want = ix.size
		}
		out := ix.query(p, want)
		SortNeighbors(out)

		// Entries left out of the tree query are at least as far as the
		// farthest returned one (within the point box size), so once that
		// one is clearly past the k-th distance no tied node is missing.
		if want == ix.size || len(out) <= k || out[len(out)-1].Dist > out[k-1].Dist+tieSlack {
			if len(out) > k {
				out = out[:k]
			}
			return out
		}
		want *= 2
	}
}

func (ix *NodeIndex) query(p orb.Point, k int) []Neighbor {
	found := ix.tree.NearestNeighbors(k, rtreego.Point{p[0], p[1]})
	out := make([]Neighbor, 0, len(found))
	for _, item := range found {
		if item == nil {
			continue
		}
		entry := item.(*nodeEntry)
		out = append(out, Neighbor{ID: entry.id, Dist: Distance(p, entry.pos)})
	}
	return out
}

// SortNeighbors orders neighbors by distance, then by id.
func SortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Dist != ns[j].Dist {
			return ns[i].Dist < ns[j].Dist
		}
		return ns[i].ID < ns[j].ID
	})
}

// boundToRect converts an orb bound into an R-tree rectangle, padding
// degenerate sides so rtreego accepts it.
func boundToRect(b orb.Bound) (rtreego.Rect, bool) {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w < 0 || h < 0 {
		return rtreego.Rect{}, false
	}
	if w == 0 {
		w = pointTolerance
	}
	if h == 0 {
		h = pointTolerance
	}

	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	if err != nil {
		return rtreego.Rect{}, false
	}
	return rect, true
}
