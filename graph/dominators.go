// ABOUTME: Implements Lengauer-Tarjan algorithm for computing dominators in directed graphs
// ABOUTME: Provides O(E α(E,V)) time complexity for finding immediate dominators

package graph

import "github.com/prateek/heapscope/snapshot"

// superRoot is the synthetic node that points to all roots. ObjID 0 is
// reserved for it; real records start at 1.
const superRoot snapshot.ObjID = 0

// Dominators computes the immediate dominator for each reachable node in
// the graph using the Lengauer-Tarjan algorithm. Returns a map from node
// ID to its immediate dominator ID. The super-root (ID 0) dominates all
// roots and has no dominator itself.
func Dominators(g Graph) map[snapshot.ObjID]snapshot.ObjID {
	// Forward adjacency, with the super-root fanning out to the roots.
	adj := make(map[snapshot.ObjID][]snapshot.ObjID, g.Len()+1)
	preds := make(map[snapshot.ObjID][]snapshot.ObjID, g.Len()+1)

	roots := g.Roots()
	if len(roots.IDs) > 0 {
		adj[superRoot] = roots.IDs
		for _, r := range roots.IDs {
			preds[r] = append(preds[r], superRoot)
		}
	}
	g.EachNode(func(n *Node) {
		if len(n.Refs) > 0 {
			adj[n.ID] = append([]snapshot.ObjID{}, n.Refs...)
			for _, ref := range n.Refs {
				preds[ref] = append(preds[ref], n.ID)
			}
		}
	})

	// DFS numbering and spanning tree from the super-root.
	var dfsNum int
	vertex := make([]snapshot.ObjID, 0, g.Len()+1)
	parent := make(map[snapshot.ObjID]int)
	dfnum := make(map[snapshot.ObjID]int)
	semi := make(map[snapshot.ObjID]int)
	ancestor := make(map[snapshot.ObjID]int)
	idom := make(map[snapshot.ObjID]snapshot.ObjID)
	samedom := make(map[snapshot.ObjID]snapshot.ObjID)
	best := make(map[snapshot.ObjID]snapshot.ObjID)
	bucket := make(map[int][]snapshot.ObjID)

	var dfs func(v snapshot.ObjID, p int)
	dfs = func(v snapshot.ObjID, p int) {
		if _, visited := dfnum[v]; visited {
			return
		}
		dfnum[v] = dfsNum
		vertex = append(vertex, v)
		parent[v] = p
		semi[v] = dfsNum
		ancestor[v] = -1
		best[v] = v
		samedom[v] = v
		dfsNum++

		for _, w := range adj[v] {
			dfs(w, dfnum[v])
		}
	}
	dfs(superRoot, -1)

	// Link-eval forest with path compression.
	var compress func(v snapshot.ObjID)
	compress = func(v snapshot.ObjID) {
		anc := ancestor[v]
		if anc == -1 {
			return
		}
		ancID := vertex[anc]
		if ancestor[ancID] != -1 {
			compress(ancID)
			if semi[best[ancID]] < semi[best[v]] {
				best[v] = best[ancID]
			}
			ancestor[v] = ancestor[ancID]
		}
	}

	eval := func(v snapshot.ObjID) snapshot.ObjID {
		if ancestor[v] == -1 {
			return v
		}
		compress(v)
		return best[v]
	}

	// Process vertices in reverse DFS order.
	for i := dfsNum - 1; i > 0; i-- {
		w := vertex[i]
		wNum := dfnum[w]

		// Step 2: compute semidominators from all predecessors of w.
		for _, v := range preds[w] {
			vNum, reachable := dfnum[v]
			if !reachable {
				continue
			}
			var u snapshot.ObjID
			if vNum <= wNum {
				u = v
			} else {
				u = eval(v)
			}
			if semi[u] < semi[w] {
				semi[w] = semi[u]
			}
		}

		bucket[semi[w]] = append(bucket[semi[w]], w)
		if parent[w] != -1 {
			ancestor[w] = parent[w]
		}

		// Step 3: implicitly compute immediate dominators.
		for _, v := range bucket[parent[w]] {
			u := eval(v)
			if semi[u] == semi[v] {
				idom[v] = vertex[parent[w]]
			} else {
				samedom[v] = u
			}
		}
		bucket[parent[w]] = nil
	}

	// Step 4: explicitly compute immediate dominators.
	for i := 1; i < dfsNum; i++ {
		w := vertex[i]
		if samedom[w] != w {
			idom[w] = idom[samedom[w]]
		}
	}

	delete(idom, superRoot)
	return idom
}

// DominatorTree builds a tree structure from immediate dominators.
// Returns a map from each node to its list of immediately dominated nodes.
func DominatorTree(idom map[snapshot.ObjID]snapshot.ObjID) map[snapshot.ObjID][]snapshot.ObjID {
	tree := make(map[snapshot.ObjID][]snapshot.ObjID, len(idom)+1)

	for node := range idom {
		tree[node] = []snapshot.ObjID{}
	}
	tree[superRoot] = []snapshot.ObjID{}

	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}

	return tree
}
