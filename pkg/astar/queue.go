package astar

// entry is one open-set record. A node may have several entries; only the
// one matching its current best g is live.
type entry struct {
	id int
	g  float64
	f  float64
}

// openSet implements heap.Interface ordered by f, then node id.
type openSet []entry

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].id < o[j].id
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) {
	*o = append(*o, x.(entry))
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	*o = old[:n-1]
	return item
}
