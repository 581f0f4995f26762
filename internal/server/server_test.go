package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"proximity-planner/pkg/graph"
	"proximity-planner/pkg/planner"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc, err := planner.New(planner.Config{
		Layout:  graph.GridLayout{Cols: 4, Rows: 4, Spacing: 10},
		Builder: graph.Builder{K: 4},
		Seed:    1,
	}, nil)
	if err != nil {
		t.Fatalf("planner.New() error: %v", err)
	}
	return New(svc, nil)
}

func TestRouteHandler(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(RouteRequest{Start: Point{X: 1, Y: 1}, End: Point{X: 29, Y: 31}})
	req := httptest.NewRequest(http.MethodPost, "/route", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var resp RouteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	if first := resp.Path[0]; first != (Point{X: 0, Y: 0}) {
		t.Errorf("path starts at %+v, expected snapped start (0,0)", first)
	}
	if last := resp.Path[len(resp.Path)-1]; last != (Point{X: 30, Y: 30}) {
		t.Errorf("path ends at %+v, expected snapped end (30,30)", last)
	}
	if resp.Distance < math.Hypot(30, 30) || resp.Distance > 60 {
		t.Errorf("Distance = %v, expected between the straight line and the grid walk", resp.Distance)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header")
	}
}

func TestRouteHandlerRejects(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad body", http.MethodPost, "{", http.StatusBadRequest},
		{"preflight", http.MethodOptions, "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/route", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Errorf("status = %d, expected %d", rec.Code, tc.status)
			}
		})
	}
}

func TestRegenerateHandler(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/regenerate", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	var resp RegenerateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.NumNodes != 16 || resp.Start == resp.Goal {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestGraphHandlerDeduplicatesEdges(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp struct {
		Lines    [][]Point `json:"lines"`
		NumNodes int       `json:"numNodes"`
		NumEdges int       `json:"numEdges"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	g := srv.svc.Graph()
	if resp.NumEdges >= g.EdgeCount() {
		t.Errorf("NumEdges = %d, expected fewer than %d directed edges", resp.NumEdges, g.EdgeCount())
	}
	if resp.NumNodes != 16 || len(resp.Lines) != resp.NumEdges {
		t.Errorf("unexpected response: nodes %d lines %d edges %d", resp.NumNodes, len(resp.Lines), resp.NumEdges)
	}
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ready" {
		t.Errorf("status = %v, expected ready", resp["status"])
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	s := New(nil, log.New(&logs))

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, map[string]float64{"distance": math.NaN()})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(logs.String(), "failed to encode response") {
		t.Errorf("expected encode failure to be logged, got %q", logs.String())
	}
}
