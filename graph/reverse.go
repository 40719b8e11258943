// ABOUTME: Builds reverse edges for graph traversal
// ABOUTME: Maps objects to their referrers for paths-to-roots

package graph

import "github.com/prateek/heapscope/snapshot"

// ReverseEdges maps each node to the nodes that reference it
type ReverseEdges map[snapshot.ObjID][]snapshot.ObjID

// BuildReverseEdges creates a map of reverse edges
func BuildReverseEdges(g Graph) ReverseEdges {
	reverse := make(ReverseEdges)

	g.EachNode(func(n *Node) {
		for _, target := range n.Refs {
			reverse[target] = append(reverse[target], n.ID)
		}
	})

	return reverse
}
