// Package follow walks an agent along a path one waypoint per tick.
package follow

import (
	"github.com/paulmach/orb"

	"proximity-planner/pkg/graph"
)

// State is the follower's mode.
type State int

const (
	// Following means waypoints remain or exhaustion has not been reported yet.
	Following State = iota
	// Exhausted means the end of the path has been signalled and the
	// follower waits for a new path.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Following:
		return "following"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// EventKind classifies what a tick produced.
type EventKind int

const (
	// EventIdle is returned by ticks after exhaustion until a path is installed.
	EventIdle EventKind = iota
	// EventWaypoint carries the next target.
	EventWaypoint
	// EventExhausted is emitted exactly once when the path runs out.
	EventExhausted
)

func (k EventKind) String() string {
	switch k {
	case EventIdle:
		return "idle"
	case EventWaypoint:
		return "waypoint"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Waypoint is a single movement target.
type Waypoint struct {
	Node  int
	Index int // position within the path
	Pos   orb.Point
}

// Event is the result of one tick.
type Event struct {
	Kind     EventKind
	Waypoint Waypoint // valid for EventWaypoint
}

// Follower owns a path and a cursor into it. It is driven by an external
// tick and is not safe for concurrent use.
type Follower struct {
	path      graph.Path
	positions graph.Positions
	cursor    int
	state     State
}

// New returns a follower that resolves waypoint positions from positions,
// which may be nil.
func New(positions graph.Positions) *Follower {
	return &Follower{positions: positions, state: Exhausted}
}

// Install replaces the path and rewinds the cursor. An empty path is valid
// and exhausts on the next tick.
func (f *Follower) Install(path graph.Path, positions graph.Positions) {
	f.path = path
	if positions != nil {
		f.positions = positions
	}
	f.cursor = 0
	f.state = Following
}

// Tick advances the follower by one step.
func (f *Follower) Tick() Event {
	if f.state == Exhausted {
		return Event{Kind: EventIdle}
	}

	if f.cursor >= len(f.path) {
		f.state = Exhausted
		return Event{Kind: EventExhausted}
	}

	id := f.path[f.cursor]
	wp := Waypoint{Node: id, Index: f.cursor, Pos: f.positions[id]}
	f.cursor++
	return Event{Kind: EventWaypoint, Waypoint: wp}
}

// Cursor returns the index of the next waypoint.
func (f *Follower) Cursor() int { return f.cursor }

// State returns the current mode.
func (f *Follower) State() State { return f.state }

// Path returns the installed path.
func (f *Follower) Path() graph.Path { return f.path }

// Remaining returns how many waypoints are left to emit.
func (f *Follower) Remaining() int {
	if f.cursor >= len(f.path) {
		return 0
	}
	return len(f.path) - f.cursor
}

// Last returns the most recently emitted waypoint node, or -1 if none.
func (f *Follower) Last() int {
	if f.cursor == 0 || f.cursor > len(f.path) {
		return -1
	}
	return f.path[f.cursor-1]
}
