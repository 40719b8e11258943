// ABOUTME: Graph interface, in-memory implementation, and snapshot adapter
// ABOUTME: Provides the object-graph view the analysis algorithms run over

package graph

import (
	"sort"
	"sync"

	"github.com/prateek/heapscope/snapshot"
)

// Graph is the object-graph view of one snapshot.
type Graph interface {
	// AddNode adds a node to the graph
	AddNode(n *Node)

	// Node retrieves a node by ID
	Node(id snapshot.ObjID) *Node

	// Len returns the total number of nodes
	Len() int

	// EachNode iterates over all nodes
	EachNode(fn func(*Node))

	// SetRoots sets the root set
	SetRoots(roots Roots)

	// Roots returns the root set
	Roots() Roots
}

// MemGraph is an in-memory implementation of Graph.
type MemGraph struct {
	mu    sync.RWMutex
	nodes map[snapshot.ObjID]*Node
	roots Roots
}

// NewMemGraph creates a new in-memory graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		nodes: make(map[snapshot.ObjID]*Node),
	}
}

// AddNode adds a node to the graph.
func (g *MemGraph) AddNode(n *Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[n.ID] = n
}

// Node retrieves a node by ID.
func (g *MemGraph) Node(id snapshot.ObjID) *Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodes[id]
}

// Len returns the total number of nodes.
func (g *MemGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EachNode iterates over all nodes.
func (g *MemGraph) EachNode(fn func(*Node)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, n := range g.nodes {
		fn(n)
	}
}

// SetRoots sets the root set.
func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = roots
}

// Roots returns the root set.
func (g *MemGraph) Roots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.roots
}

// FromSnapshot builds the graph view of a decoded snapshot. Every object
// record becomes a node; the roots are the records no other record
// references, in ascending ID order. A snapshot whose records all sit on
// cycles has no roots.
func FromSnapshot(s *snapshot.Snapshot) *MemGraph {
	g := NewMemGraph()
	referenced := make(map[snapshot.ObjID]bool)
	for _, rec := range s.Objects {
		g.AddNode(&Node{
			ID:       rec.ID,
			TypeName: rec.TypeName,
			Size:     rec.SizeBytes,
			Refs:     append([]snapshot.ObjID{}, rec.Refs...),
		})
		for _, ref := range rec.Refs {
			if ref != rec.ID {
				referenced[ref] = true
			}
		}
	}
	var roots []snapshot.ObjID
	for id := range s.Objects {
		if !referenced[id] {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	g.SetRoots(Roots{IDs: roots})
	return g
}
