package geo

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

func TestObstacleIndexBlocks(t *testing.T) {
	ix := NewObstacleIndex([]orb.Polygon{
		square(4, 4, 6, 6),
		square(20, 20, 22, 22),
	})

	if ix.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", ix.Len())
	}
	if !ix.Blocks(orb.Point{0, 5}, orb.Point{10, 5}) {
		t.Error("expected segment through first obstacle to be blocked")
	}
	if ix.Blocks(orb.Point{0, 10}, orb.Point{10, 10}) {
		t.Error("expected segment above obstacles to be clear")
	}
	if !ix.Contains(orb.Point{21, 21}) {
		t.Error("expected point inside second obstacle to be contained")
	}
	if ix.Contains(orb.Point{10, 10}) {
		t.Error("expected open point not to be contained")
	}
}

func TestObstacleIndexQuery(t *testing.T) {
	ix := NewObstacleIndex([]orb.Polygon{square(4, 4, 6, 6), square(20, 20, 22, 22)})

	got := ix.Query(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}})
	if len(got) != 1 {
		t.Fatalf("Query() returned %d polygons, expected 1", len(got))
	}
}

func TestNilObstacleIndex(t *testing.T) {
	var ix *ObstacleIndex
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", ix.Len())
	}
	if ix.Blocks(orb.Point{0, 0}, orb.Point{1, 1}) {
		t.Error("nil index should block nothing")
	}
}

func TestNodeIndexNearest(t *testing.T) {
	ix := NewNodeIndex()
	ix.Insert(0, orb.Point{0, 0})
	ix.Insert(1, orb.Point{1, 0})
	ix.Insert(2, orb.Point{0, 2})
	ix.Insert(3, orb.Point{5, 5})

	got := ix.Nearest(orb.Point{0, 0}, 3)
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("Nearest() returned %d results, expected %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Nearest()[%d].ID = %d, expected %d", i, got[i].ID, id)
		}
	}

	if all := ix.Nearest(orb.Point{0, 0}, 10); len(all) != 4 {
		t.Errorf("Nearest() with k > size returned %d results, expected 4", len(all))
	}
}

func TestNodeIndexMatchesScan(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([]orb.Point, 200)
	ix := NewNodeIndex()
	for i := range points {
		points[i] = orb.Point{rng.Float64() * 100, rng.Float64() * 100}
		ix.Insert(i, points[i])
	}

	for q := 0; q < 20; q++ {
		query := orb.Point{rng.Float64() * 100, rng.Float64() * 100}

		scan := make([]Neighbor, len(points))
		for i, p := range points {
			scan[i] = Neighbor{ID: i, Dist: Distance(query, p)}
		}
		SortNeighbors(scan)

		got := ix.Nearest(query, 5)
		for i := range got {
			if got[i].ID != scan[i].ID {
				t.Fatalf("query %d: Nearest()[%d] = %d, expected %d", q, i, got[i].ID, scan[i].ID)
			}
		}
	}
}

func TestNodeIndexNearestTies(t *testing.T) {
	// 10x8 lattice: every interior node has four neighbours at the same
	// distance, so the cut at k must fall back to ascending id.
	ix := NewNodeIndex()
	var points []orb.Point
	for row := 0; row < 8; row++ {
		for col := 0; col < 10; col++ {
			p := orb.Point{50 + float64(col)*70, 50 + float64(row)*70}
			ix.Insert(len(points), p)
			points = append(points, p)
		}
	}

	for id, query := range points {
		scan := make([]Neighbor, len(points))
		for i, p := range points {
			scan[i] = Neighbor{ID: i, Dist: Distance(query, p)}
		}
		SortNeighbors(scan)

		for k := 1; k <= 7; k++ {
			got := ix.Nearest(query, k)
			if len(got) != k {
				t.Fatalf("node %d k=%d: Nearest() returned %d results", id, k, len(got))
			}
			for i := range got {
				if got[i].ID != scan[i].ID {
					t.Errorf("node %d k=%d: Nearest()[%d] = %d, expected %d", id, k, i, got[i].ID, scan[i].ID)
				}
			}
		}
	}
}
