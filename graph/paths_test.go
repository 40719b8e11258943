// ABOUTME: Tests for the paths-to-roots BFS
// ABOUTME: Validates path discovery, cycle handling, and the maxPaths cap

package graph

import (
	"testing"

	"github.com/prateek/heapscope/snapshot"
)

func buildDiamond() *MemGraph {
	// 1 -> 2 -> 4, 1 -> 3 -> 4
	g := NewMemGraph()
	g.AddNode(&Node{ID: 1, Refs: []snapshot.ObjID{2, 3}})
	g.AddNode(&Node{ID: 2, Refs: []snapshot.ObjID{4}})
	g.AddNode(&Node{ID: 3, Refs: []snapshot.ObjID{4}})
	g.AddNode(&Node{ID: 4})
	g.SetRoots(Roots{IDs: []snapshot.ObjID{1}})
	return g
}

func TestPathsToRoots(t *testing.T) {
	g := buildDiamond()

	paths := PathsToRoots(g, 4, 10)
	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(paths))
	}
	for _, p := range paths {
		if len(p.IDs) != 3 {
			t.Errorf("Expected path length 3, got %v", p.IDs)
		}
		if p.IDs[0] != 4 {
			t.Errorf("Expected path to start at 4, got %v", p.IDs)
		}
		if p.IDs[len(p.IDs)-1] != 1 {
			t.Errorf("Expected path to end at root 1, got %v", p.IDs)
		}
	}
}

func TestPathsToRootsMaxPaths(t *testing.T) {
	g := buildDiamond()

	paths := PathsToRoots(g, 4, 1)
	if len(paths) != 1 {
		t.Errorf("Expected 1 path with maxPaths=1, got %d", len(paths))
	}

	if got := PathsToRoots(g, 4, 0); got != nil {
		t.Errorf("Expected nil for maxPaths=0, got %v", got)
	}
}

func TestPathsToRootsFromRoot(t *testing.T) {
	g := buildDiamond()

	paths := PathsToRoots(g, 1, 5)
	if len(paths) != 1 || len(paths[0].IDs) != 1 || paths[0].IDs[0] != 1 {
		t.Errorf("Expected single trivial path [1], got %v", paths)
	}
}

func TestPathsToRootsWithCycle(t *testing.T) {
	// 1 -> 2 <-> 3, root 1
	g := NewMemGraph()
	g.AddNode(&Node{ID: 1, Refs: []snapshot.ObjID{2}})
	g.AddNode(&Node{ID: 2, Refs: []snapshot.ObjID{3}})
	g.AddNode(&Node{ID: 3, Refs: []snapshot.ObjID{2}})
	g.SetRoots(Roots{IDs: []snapshot.ObjID{1}})

	paths := PathsToRoots(g, 3, 10)
	if len(paths) != 1 {
		t.Fatalf("Expected 1 path despite cycle, got %d", len(paths))
	}
	want := []snapshot.ObjID{3, 2, 1}
	for i, id := range want {
		if paths[0].IDs[i] != id {
			t.Errorf("Expected path %v, got %v", want, paths[0].IDs)
			break
		}
	}
}

func TestPathsToRootsUnreachable(t *testing.T) {
	g := NewMemGraph()
	g.AddNode(&Node{ID: 1, Refs: []snapshot.ObjID{2}})
	g.AddNode(&Node{ID: 2})
	g.AddNode(&Node{ID: 5}) // disconnected
	g.SetRoots(Roots{IDs: []snapshot.ObjID{1}})

	if paths := PathsToRoots(g, 5, 10); len(paths) != 0 {
		t.Errorf("Expected no paths for disconnected node, got %v", paths)
	}
}
