// ABOUTME: BFS algorithm for finding paths from objects to root objects
// ABOUTME: Implements K-shortest paths with cycle detection

package graph

import "github.com/prateek/heapscope/snapshot"

// Path represents a path from an object to a root
type Path struct {
	IDs []snapshot.ObjID // Sequence of object IDs from target to root
}

// PathsToRoots finds up to maxPaths paths from an object to the graph's
// roots by walking reverse edges breadth-first. Paths never revisit a
// node, so cycles cannot cause non-termination.
func PathsToRoots(g Graph, from snapshot.ObjID, maxPaths int) []Path {
	if maxPaths <= 0 {
		return nil
	}

	reverse := BuildReverseEdges(g)

	rootSet := make(map[snapshot.ObjID]bool)
	for _, id := range g.Roots().IDs {
		rootSet[id] = true
	}

	// The starting object may itself be a root.
	if rootSet[from] {
		return []Path{{IDs: []snapshot.ObjID{from}}}
	}

	type searchNode struct {
		id   snapshot.ObjID
		path []snapshot.ObjID
	}

	var result []Path
	queue := []searchNode{{id: from, path: []snapshot.ObjID{from}}}

	for len(queue) > 0 && len(result) < maxPaths {
		node := queue[0]
		queue = queue[1:]

		for _, referrer := range reverse[node.id] {
			inPath := false
			for _, id := range node.path {
				if id == referrer {
					inPath = true
					break
				}
			}
			if inPath {
				continue
			}

			next := make([]snapshot.ObjID, len(node.path)+1)
			copy(next, node.path)
			next[len(node.path)] = referrer

			if rootSet[referrer] {
				result = append(result, Path{IDs: next})
				if len(result) >= maxPaths {
					break
				}
			} else {
				queue = append(queue, searchNode{id: referrer, path: next})
			}
		}
	}

	return result
}
