// ABOUTME: Core data types for the snapshot object graph
// ABOUTME: Defines Node and the Roots set used by the analysis algorithms

package graph

import "github.com/prateek/heapscope/snapshot"

// Node is one object record viewed as a graph vertex.
type Node struct {
	ID       snapshot.ObjID   // Snapshot-scoped identity
	TypeName string           // Captured type name
	Size     uint64           // Size in bytes
	Refs     []snapshot.ObjID // IDs of objects this object references
}

// Roots is the set of root nodes of the graph. When built from a
// snapshot, the roots are the top-level retainers: records no other
// record references.
type Roots struct {
	IDs []snapshot.ObjID
}
