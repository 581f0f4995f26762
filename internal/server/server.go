// Package server exposes a planner.Service over HTTP with JSON bodies.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"proximity-planner/pkg/astar"
	"proximity-planner/pkg/graph"
	"proximity-planner/pkg/planner"
)

// Point is a JSON coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func fromOrb(p orb.Point) Point { return Point{X: p[0], Y: p[1]} }

func (p Point) orb() orb.Point { return orb.Point{p.X, p.Y} }

// RouteRequest asks for a route between two arbitrary points; each is
// snapped to its nearest graph node.
type RouteRequest struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// RouteResponse is the answer to RouteRequest.
type RouteResponse struct {
	Path     []Point `json:"path"`
	Nodes    []int   `json:"nodes"`
	Success  bool    `json:"success"`
	Message  string  `json:"message,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Explored int     `json:"explored"`
}

// RegenerateResponse describes a freshly built roadmap.
type RegenerateResponse struct {
	Success  bool `json:"success"`
	NumNodes int  `json:"numNodes"`
	NumEdges int  `json:"numEdges"`
	Start    int  `json:"start"`
	Goal     int  `json:"goal"`
	Found    bool `json:"found"`
}

// Server serialises HTTP access to a single Service.
type Server struct {
	mu     sync.Mutex
	svc    *planner.Service
	logger *log.Logger
}

// New wraps svc. logger may be nil.
func New(svc *planner.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{svc: svc, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/regenerate", corsMiddleware(s.regenerateHandler))
	mux.HandleFunc("/graph", corsMiddleware(s.graphHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /route
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid route request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	g := s.svc.Graph()
	startID, _ := g.Nearest(req.Start.orb())
	endID, _ := g.Nearest(req.End.orb())
	res, err := astar.FindPath(g, startID, endID)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("route failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := RouteResponse{
		Path:     make([]Point, 0, len(res.Path)),
		Nodes:    res.Path,
		Success:  res.Found,
		Distance: res.Cost,
		Explored: res.Explored,
	}
	for _, p := range res.Path.Positions(g) {
		resp.Path = append(resp.Path, fromOrb(p))
	}
	if !res.Found {
		resp.Message = "No path found"
		resp.Nodes = []int{}
	}

	s.logger.Info("route", "start", startID, "end", endID, "found", res.Found,
		"waypoints", len(res.Path), "distance", fmt.Sprintf("%.2f", res.Cost))
	s.writeJSON(w, http.StatusOK, resp)
}

// POST /regenerate
func (s *Server) regenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	snap, err := s.svc.Regenerate()
	s.mu.Unlock()

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, graph.ErrTooFewNodes) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Error("regenerate failed", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	s.writeJSON(w, http.StatusOK, RegenerateResponse{
		Success:  true,
		NumNodes: snap.Graph.Len(),
		NumEdges: snap.Graph.EdgeCount(),
		Start:    snap.Start,
		Goal:     snap.Goal,
		Found:    snap.Result.Found,
	})
}

// GET /graph returns the edges as line segments. Edges present in both
// directions are reported once.
func (s *Server) graphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	g := s.svc.Graph()
	lines := edgeLines(g)
	numNodes := g.Len()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": numNodes,
		"numEdges": len(lines),
	})
}

// GET /health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	numNodes := s.svc.Graph().Len()
	generation := s.svc.Generation()
	start, goal := s.svc.Route()
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ready",
		"numNodes":   numNodes,
		"generation": generation,
		"start":      start,
		"goal":       goal,
	})
}

func edgeLines(g *graph.Graph) [][]Point {
	type key struct{ a, b int }
	seen := make(map[key]bool)
	lines := make([][]Point, 0)

	for _, from := range g.IDs() {
		for _, e := range g.Neighbors(from) {
			k := key{from, e.To}
			if e.To < from {
				k = key{e.To, from}
			}
			if seen[k] {
				continue
			}
			seen[k] = true
			lines = append(lines, []Point{fromOrb(g.Positions[from]), fromOrb(g.Positions[e.To])})
		}
	}

	return lines
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "status", status, "error", err)
	}
}
