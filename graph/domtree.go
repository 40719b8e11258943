// ABOUTME: Utility functions for working with dominator trees
// ABOUTME: Provides tree traversal and analysis capabilities

package graph

import "github.com/prateek/heapscope/snapshot"

// DominatorDepth computes the depth of each node in the dominator tree.
// Returns a map from node ID to its depth (the super-root has depth 0).
func DominatorDepth(tree map[snapshot.ObjID][]snapshot.ObjID) map[snapshot.ObjID]int {
	depth := make(map[snapshot.ObjID]int, len(tree))

	var walk func(node snapshot.ObjID, d int)
	walk = func(node snapshot.ObjID, d int) {
		depth[node] = d
		for _, child := range tree[node] {
			walk(child, d+1)
		}
	}
	walk(superRoot, 0)

	return depth
}

// DominatorPath returns the path from a node to the root in the dominator
// tree. The path includes the node itself and ends with the super-root.
func DominatorPath(idom map[snapshot.ObjID]snapshot.ObjID, node snapshot.ObjID) []snapshot.ObjID {
	var path []snapshot.ObjID
	current := node

	for {
		path = append(path, current)
		dom, exists := idom[current]
		if !exists || dom == superRoot {
			if current != superRoot {
				path = append(path, superRoot)
			}
			break
		}
		current = dom
	}

	return path
}

// IsDominated returns true if node is dominated by dominator.
func IsDominated(idom map[snapshot.ObjID]snapshot.ObjID, node, dominator snapshot.ObjID) bool {
	if node == dominator {
		return true // a node dominates itself
	}

	current := node
	for {
		dom, exists := idom[current]
		if !exists {
			return false
		}
		if dom == dominator {
			return true
		}
		if dom == superRoot {
			return dominator == superRoot
		}
		current = dom
	}
}
