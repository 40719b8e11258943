// ABOUTME: Calculates retained memory sizes using dominator tree analysis
// ABOUTME: Provides efficient computation of memory retained by each object

package graph

import "github.com/prateek/heapscope/snapshot"

// RetainedSize computes the retained size for each reachable node in the
// graph. The retained size of an object is the total size of everything
// that would become unreachable if that object were removed, derived from
// the dominator tree: an object retains all objects it dominates.
// Returns a map from object ID to its retained size in bytes.
func RetainedSize(g Graph) map[snapshot.ObjID]uint64 {
	idom := Dominators(g)
	tree := DominatorTree(idom)

	sizes := make(map[snapshot.ObjID]uint64, g.Len()+1)
	g.EachNode(func(n *Node) {
		sizes[n.ID] = n.Size
	})
	sizes[superRoot] = 0

	retained := make(map[snapshot.ObjID]uint64, len(tree))

	var accumulate func(snapshot.ObjID) uint64
	accumulate = func(node snapshot.ObjID) uint64 {
		if size, done := retained[node]; done {
			return size
		}
		size := sizes[node]
		for _, child := range tree[node] {
			size += accumulate(child)
		}
		retained[node] = size
		return size
	}

	for node := range tree {
		accumulate(node)
	}

	delete(retained, superRoot)
	return retained
}

// RetainedSizeOf computes retained sizes for a specific subset of
// objects, avoiding the full sweep when only a few are needed.
func RetainedSizeOf(g Graph, targets []snapshot.ObjID) map[snapshot.ObjID]uint64 {
	if len(targets) == 0 {
		return map[snapshot.ObjID]uint64{}
	}

	idom := Dominators(g)
	tree := DominatorTree(idom)

	sizes := make(map[snapshot.ObjID]uint64, g.Len()+1)
	g.EachNode(func(n *Node) {
		sizes[n.ID] = n.Size
	})
	sizes[superRoot] = 0

	cache := make(map[snapshot.ObjID]uint64)
	var accumulate func(snapshot.ObjID) uint64
	accumulate = func(node snapshot.ObjID) uint64 {
		if size, done := cache[node]; done {
			return size
		}
		size := sizes[node]
		for _, child := range tree[node] {
			size += accumulate(child)
		}
		cache[node] = size
		return size
	}

	result := make(map[snapshot.ObjID]uint64, len(targets))
	for _, target := range targets {
		if _, exists := sizes[target]; exists && target != superRoot {
			result[target] = accumulate(target)
		}
	}
	return result
}
